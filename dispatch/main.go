package dispatch

import (
	"context"
	"errors"
	"fmt"

	optio "github.com/dzonerzy/go-optparse/io"
	"github.com/dzonerzy/go-optparse/optparse"
)

// Parser builds the option parser used by Main. Options stop at the first
// positional argument so the sub-command's own options are forwarded intact.
func (d *Dispatcher) Parser() (*optparse.Parser, error) {
	return d.parser(d.programContext())
}

func (d *Dispatcher) programContext() *optio.ProgramContext {
	pc := optio.New().WithIn(d.stdin()).WithOut(d.stdout()).WithErr(d.stderr())
	if d.Prog != "" {
		pc.WithProg(d.Prog)
	}
	return pc
}

func (d *Dispatcher) parser(pc *optio.ProgramContext) (*optparse.Parser, error) {
	p, err := optparse.NewParser(pc, optparse.Config{
		Usage:       "%prog [options] COMMAND [ARGS...]",
		Description: d.Description,
		Version:     d.Version,
		Prog:        d.Prog,
	})
	if err != nil {
		return nil, err
	}
	p.WithLogger(d.logger()).DisableInterspersedArgs()

	_, err = p.AddOption([]string{"-l", "--list"}, optparse.D{
		"action": "store_true",
		"help":   "list available commands and exit",
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Main parses argv (argv[0] is the program itself), then lists commands or
// runs the named one. It returns the process exit status.
func (d *Dispatcher) Main(ctx context.Context, argv []string) int {
	pc := d.programContext()
	log := optio.NewLogger(pc).WithFormat(optio.LogFormatProg)

	p, err := d.parser(pc)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	res, err := p.Parse(argv, nil)
	if err != nil {
		var term *optparse.Terminate
		if errors.As(err, &term) {
			return term.Status
		}
		log.Error("%v", err)
		return p.ExitCodes().Resolve(err)
	}

	if list, _ := res.Values.GetBool("list"); list {
		names, err := d.Commands()
		if err != nil {
			log.Error("%v", err)
			return 1
		}
		for _, name := range names {
			fmt.Fprintln(d.stdout(), name)
		}
		return 0
	}

	if len(res.Args) == 0 {
		p.Error(errors.New("no command given"))
		return ExitUsage
	}

	code, err := d.Run(ctx, res.Args[0], res.Args[1:])
	if err != nil {
		var unknown *UnknownCommandError
		if errors.As(err, &unknown) {
			p.Error(err)
			return code
		}
		log.Error("%v", err)
	}
	return code
}
