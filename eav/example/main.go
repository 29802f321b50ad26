package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aglyzov/go-egg/amtrie"
	"github.com/aglyzov/go-egg/bitindex"
	"github.com/aglyzov/go-egg/eav"
)

var traceFlag = &cli.BoolFlag{
	Name:  "trace",
	Usage: "log every trie lookup step to stderr",
}

func main() {
	app := &cli.App{
		Name:  "eav-example",
		Usage: "index a handful of facts and query them",
		Flags: []cli.Flag{traceFlag},
		Commands: []*cli.Command{
			{
				Name:   "dump",
				Usage:  "print both indices",
				Action: dump,
			},
			{
				Name:      "find",
				Usage:     "find a person by name and print the address",
				ArgsUsage: "<name>",
				Action:    find,
			},
		},
		Action: find,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func data() []eav.Datum {
	return []eav.Datum{
		eav.NewDatum(0, "person/name", eav.Str("Rudolph")),
		eav.NewDatum(0, "person/address", eav.Ref(2)),
		eav.NewDatum(1, "person/name", eav.Str("Ruth")),
		eav.NewDatum(1, "person/address", eav.Ref(2)),
		eav.NewDatum(2, "address/line1", eav.Str("123 Some Street")),
		eav.NewDatum(2, "address/line2", eav.Str("Some Suburb")),
	}
}

func open(ctx *cli.Context) (*eav.DB, error) {
	var opts []amtrie.Option

	if ctx.Bool(traceFlag.Name) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))

		opts = append(opts, amtrie.WithLogger(logger))
	}

	return eav.NewDB(data(), opts...)
}

func dump(ctx *cli.Context) error {
	db, err := open(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("hardware popcount: %v\n", bitindex.HasHardwarePopcount())
	fmt.Println(db.AVE)
	fmt.Println(db.EAV)

	return nil
}

func find(ctx *cli.Context) error {
	name := "Ruth"
	if ctx.NArg() > 0 {
		name = ctx.Args().First()
	}

	db, err := open(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Find %s!\n", name)

	eid, ok, err := db.AVE.FindOne("person/name", eav.Str(name))
	if err != nil {
		return err
	}

	if !ok {
		fmt.Printf("Could not find %s\n", name)
		return nil
	}

	addr, ok, err := db.Follow(eid, "person/address")
	if err != nil {
		return err
	}

	if !ok {
		fmt.Println("Could not find address")
		return nil
	}

	var line [2]string

	for i, attr := range []eav.Attr{"address/line1", "address/line2"} {
		if line[i], err = db.Str(addr, attr); err != nil {
			return err
		}
	}

	fmt.Printf("%s: (%d, %q, %q, %q)\n", name, eid, name, line[0], line[1])

	return nil
}
