package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	bridge "github.com/Teradata/gosqlbridge"
	"github.com/Teradata/gosqlbridge/native"
	"github.com/Teradata/gosqlbridge/session"
)

func main() {
	var (
		libDir      = flag.String("libdir", ".", "Directory containing the native driver library")
		params      = flag.String("params", "", `Connection parameters as a JSON object`)
		request     = flag.String("request", "", "SQL request to execute")
		bind        = flag.String("bind", "", "Bind values as a JSON array of rows (optional)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose driver logging")
	)
	flag.Parse()

	if *params == "" || (*request == "" && !*interactive) {
		fmt.Fprintln(os.Stderr, `Usage: tdsql -params '{"host":...,"user":...,"password":...}' -request <sql> [-bind json] [-libdir dir]`)
		fmt.Fprintln(os.Stderr, `       tdsql -params '{...}' -i  (interactive mode)`)
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		native.SetLogger(logger.Named("native"))
		session.SetLogger(logger.Named("session"))
	}

	lib, err := native.Load(*libDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(lib, *params); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(lib, *params, *request, *bind); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(d bridge.Driver, params, request, bind string) error {
	sess, err := session.Connect(d, params)
	if err != nil {
		return err
	}
	defer sess.Close()

	rows, err := sess.Execute(request, bind)
	if err != nil {
		return err
	}
	defer rows.Close()

	for resultNum := 1; ; resultNum++ {
		meta, err := rows.Metadata()
		if err != nil {
			return err
		}
		fmt.Printf("Result %d: %s, activity count %d\n", resultNum, meta.ActivityName, meta.ActivityCount)

		count := 0
		for {
			row, ok, err := rows.Fetch()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			fmt.Println(row)
			count++
		}
		fmt.Printf("(%d rows)\n", count)

		more, err := rows.NextResultSet()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}
