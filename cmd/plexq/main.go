package main

import (
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/docopt/docopt-go"

	"github.com/hasbyte1/go-plex/interop"
	"github.com/hasbyte1/go-plex/plex"
)

const PlexqVersion = "0.1.0"

var Out *log.Logger
var Err *log.Logger

func init() {
	Out = log.New(os.Stdout, "", 0)
	Err = log.New(os.Stderr, "", 0)
}

func main() {
	usage := `Query a JSON array of records.

Reads the array from --input (or stdin) and writes results to stdout.

Usage:
    plexq select <field> [--input=<file>] [--yaml]
    plexq where <field> (--eq=<v> | --ne=<v> | --lt=<v> | --le=<v> | --gt=<v> | --ge=<v>) [--input=<file>] [--csv]
    plexq group <field> [--input=<file>]
    plexq table [--index=<col>] [--input=<file>]
    plexq shape [--input=<file>]

Options:
    -h --help          Show this screen.
    --version          Show version.
    --input=<file>     Read records from file instead of stdin.
    --index=<col>      Put this column first in the table.
    --yaml             Emit YAML instead of JSON.
    --csv              Emit CSV instead of JSON.`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], PlexqVersion)
	if err != nil {
		Err.Fatalln(err)
	}

	records := loadRecords(opts)

	if select_, _ := opts.Bool("select"); select_ {
		selectField(opts, records)
	} else if where_, _ := opts.Bool("where"); where_ {
		where(opts, records)
	} else if group_, _ := opts.Bool("group"); group_ {
		group(opts, records)
	} else if table_, _ := opts.Bool("table"); table_ {
		table(opts, records)
	} else if shape_, _ := opts.Bool("shape"); shape_ {
		shape(records)
	}
}

func loadRecords(opts docopt.Opts) *plex.Plex {
	var data []byte
	var err error
	if path, _ := opts.String("--input"); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		Err.Fatalln(err)
	}
	records, err := interop.FromJSON(data)
	if err != nil {
		Err.Fatalln(err)
	}
	return records
}

func selectField(opts docopt.Opts, records *plex.Plex) {
	field, _ := opts.String("<field>")
	vals, err := records.Attr(field)
	if err != nil {
		Err.Fatalln(err)
	}
	if yaml_, _ := opts.Bool("--yaml"); yaml_ {
		out, err := interop.ToYAML(vals)
		if err != nil {
			Err.Fatalln(err)
		}
		os.Stdout.Write(out)
		return
	}
	emitJSON(vals)
}

func where(opts docopt.Opts, records *plex.Plex) {
	field, _ := opts.String("<field>")
	vals, err := records.Attr(field)
	if err != nil {
		Err.Fatalln(err)
	}

	var matched *plex.Plex
	switch {
	case hasOpt(opts, "--eq"):
		matched = vals.Eq(optValue(opts, "--eq"))
	case hasOpt(opts, "--ne"):
		matched = vals.Ne(optValue(opts, "--ne"))
	case hasOpt(opts, "--lt"):
		matched = vals.Lt(optValue(opts, "--lt"))
	case hasOpt(opts, "--le"):
		matched = vals.Le(optValue(opts, "--le"))
	case hasOpt(opts, "--gt"):
		matched = vals.Gt(optValue(opts, "--gt"))
	case hasOpt(opts, "--ge"):
		matched = vals.Ge(optValue(opts, "--ge"))
	}

	if csv_, _ := opts.Bool("--csv"); csv_ {
		if err := interop.WriteCSV(os.Stdout, matched, ""); err != nil {
			Err.Fatalln(err)
		}
		return
	}
	emitJSON(matched)
}

func group(opts docopt.Opts, records *plex.Plex) {
	field, _ := opts.String("<field>")
	vals, err := records.Attr(field)
	if err != nil {
		Err.Fatalln(err)
	}
	grouped, err := vals.GroupBy()
	if err != nil {
		Err.Fatalln(err)
	}
	emitJSON(grouped)
}

func table(opts docopt.Opts, records *plex.Plex) {
	indexCol, _ := opts.String("--index")
	if err := interop.WriteCSV(os.Stdout, records, indexCol); err != nil {
		Err.Fatalln(err)
	}
}

func shape(records *plex.Plex) {
	Out.Printf("depth=%d len=%v structure=%v\n", records.Depth(), records.Len(), records.Structure())
}

func hasOpt(opts docopt.Opts, key string) bool {
	v, ok := opts[key]
	return ok && v != nil
}

// optValue parses an option value as JSON when possible, so numbers and
// booleans compare as themselves rather than as strings.
func optValue(opts docopt.Opts, key string) any {
	s, _ := opts.String(key)
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

func emitJSON(p *plex.Plex) {
	out, err := interop.ToJSON(p)
	if err != nil {
		Err.Fatalln(err)
	}
	Out.Println(string(out))
}
