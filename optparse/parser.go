// Package optparse is a command-line option parser. A Parser holds the
// registered options (with spelling-conflict handling and default values) and
// walks an argument vector into a mapping of destination keys to values plus
// the positional arguments.
package optparse

import (
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"

	optio "github.com/dzonerzy/go-optparse/io"
)

// ConflictHandler decides what Add does with a spelling that is already taken.
type ConflictHandler string

const (
	// ConflictHandlerError makes a duplicate spelling a registration error.
	ConflictHandlerError ConflictHandler = "error"
	// ConflictHandlerResolve moves the spelling to the newest option.
	ConflictHandlerResolve ConflictHandler = "resolve"
)

// Config is the construction-time configuration of a Parser.
type Config struct {
	Usage           string // "%prog" is replaced by the program name
	Description     string
	AddHelpOption   *bool // nil means true
	Version         string
	ConflictHandler ConflictHandler // empty means ConflictHandlerError
	Prog            string          // overrides the ProgramContext's name
	OptionClass     string          // factory used by AddOption
}

const (
	cfgUsage           = "usage"
	cfgDescription     = "description"
	cfgAddHelpOption   = "add_help_option"
	cfgVersion         = "version"
	cfgConflictHandler = "conflict_handler"
	cfgProg            = "prog"
	cfgOptionClass     = "option_class"
)

var configKeys = []string{cfgUsage, cfgDescription, cfgAddHelpOption, cfgVersion, cfgConflictHandler, cfgProg, cfgOptionClass}

// ConfigFromMap converts a settings map into a Config, rejecting unknown keys
// and ill-typed values.
func ConfigFromMap(m D) (Config, error) {
	var cfg Config
	if bad := unknownKeys(m, configKeys); len(bad) > 0 {
		return cfg, &ConfigurationError{Message: "invalid parser settings", Keys: bad}
	}
	str := func(key string, dst *string) error {
		v, ok := m[key]
		if !ok {
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return configErrorf("%s must be a string, got %T", key, v)
		}
		*dst = s
		return nil
	}
	var handler string
	for key, dst := range map[string]*string{
		cfgUsage:           &cfg.Usage,
		cfgDescription:     &cfg.Description,
		cfgVersion:         &cfg.Version,
		cfgConflictHandler: &handler,
		cfgProg:            &cfg.Prog,
		cfgOptionClass:     &cfg.OptionClass,
	} {
		if err := str(key, dst); err != nil {
			return cfg, err
		}
	}
	cfg.ConflictHandler = ConflictHandler(handler)
	if v, ok := m[cfgAddHelpOption]; ok {
		b, ok := v.(bool)
		if !ok {
			return cfg, configErrorf("%s must be a bool, got %T", cfgAddHelpOption, v)
		}
		cfg.AddHelpOption = &b
	}
	return cfg, nil
}

// Parser owns the option registry and parses argument vectors against it.
// One parse may be in flight per Parser; the registry must not be mutated
// while a parse is running.
type Parser struct {
	pc *optio.ProgramContext

	prog        string
	usage       string
	description string
	version     string

	conflictHandler ConflictHandler
	factory         OptionFactory

	options      []*Option
	defaults     Values
	fileDefaults D
	interspersed bool

	exitCodes *ExitCodeManager
	logger    *zap.Logger
	theme     optio.Theme
}

// NewParser creates a parser. A nil ProgramContext means optio.New().
func NewParser(pc *optio.ProgramContext, cfg Config) (*Parser, error) {
	if pc == nil {
		pc = optio.New()
	}
	switch cfg.ConflictHandler {
	case "":
		cfg.ConflictHandler = ConflictHandlerError
	case ConflictHandlerError, ConflictHandlerResolve:
	default:
		return nil, configErrorf("invalid conflict_handler value %q", cfg.ConflictHandler)
	}
	factory, err := lookupOptionClass(cfg.OptionClass)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		pc:              pc,
		prog:            cfg.Prog,
		usage:           cfg.Usage,
		description:     cfg.Description,
		version:         cfg.Version,
		conflictHandler: cfg.ConflictHandler,
		factory:         factory,
		defaults:        make(Values),
		interspersed:    true,
		exitCodes:       newExitCodeManager(),
		logger:          zap.NewNop(),
		theme:           optio.DefaultTheme(),
	}
	if p.usage == "" {
		p.usage = "%prog [options]"
	}

	if p.version != "" {
		if _, err := p.AddOption([]string{"--version"}, D{
			keyAction: ActionVersion,
			keyHelp:   "show program's version number and exit",
		}); err != nil {
			return nil, err
		}
	}
	if cfg.AddHelpOption == nil || *cfg.AddHelpOption {
		if _, err := p.AddOption([]string{"-h", "--help"}, D{
			keyAction: ActionHelp,
			keyHelp:   "show this help message and exit",
		}); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustNewParser is like NewParser but panics on error.
func MustNewParser(pc *optio.ProgramContext, cfg Config) *Parser {
	p, err := NewParser(pc, cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// WithLogger enables debug tracing of registration and parsing.
func (p *Parser) WithLogger(l *zap.Logger) *Parser {
	if l == nil {
		l = zap.NewNop()
	}
	p.logger = l
	return p
}

// WithTheme sets the colors used for headings and the error token.
func (p *Parser) WithTheme(t optio.Theme) *Parser { p.theme = t; return p }

// DisableInterspersedArgs makes the first positional argument end option
// processing; it and everything after it are returned as positional.
func (p *Parser) DisableInterspersedArgs() *Parser { p.interspersed = false; return p }

// EnableInterspersedArgs restores the default of mixing options and
// positional arguments.
func (p *Parser) EnableInterspersedArgs() *Parser { p.interspersed = true; return p }

// ExitCodes returns the exit-code manager for this parser.
func (p *Parser) ExitCodes() *ExitCodeManager { return p.exitCodes }

// ProgramContext returns the context the parser writes through.
func (p *Parser) ProgramContext() *optio.ProgramContext { return p.pc }

// Prog returns the program name used in usage and error output.
func (p *Parser) Prog() string {
	if p.prog != "" {
		return p.prog
	}
	return p.pc.Prog()
}

// Registry

// Add registers opt. Under ConflictHandlerError a spelling already owned by another
// option fails the whole call with no change to the registry. Under
// ConflictHandlerResolve the newest option takes the spelling; an older option left
// without spellings is removed.
func (p *Parser) Add(opt *Option) error {
	if opt == nil {
		return configErrorf("nil option")
	}
	if slices.Contains(p.options, opt) {
		return configErrorf("option %s is already registered", opt)
	}

	if p.conflictHandler == ConflictHandlerError {
		var clashes []string
		var owner *Option
		for _, s := range opt.strings {
			if o := p.Lookup(s); o != nil {
				clashes = append(clashes, s)
				if owner == nil {
					owner = o
				}
			}
		}
		if len(clashes) > 0 {
			return &ConflictError{Spellings: clashes, Owner: owner}
		}
	} else {
		for _, s := range opt.strings {
			owner := p.Lookup(s)
			if owner == nil {
				continue
			}
			if len(owner.strings) == 1 {
				p.options = lo.Without(p.options, owner)
				p.logger.Debug("option removed by conflict", zap.String("spelling", s), zap.String("owner", owner.describe()))
				continue
			}
			owner.strings = lo.Without(owner.strings, s)
			owner.disabled = append(owner.disabled, s)
			p.logger.Debug("spelling disabled by conflict", zap.String("spelling", s), zap.String("owner", owner.describe()))
		}
	}

	p.options = append(p.options, opt)
	if opt.hasDest {
		if opt.hasDefault {
			p.defaults[opt.dest] = opt.defaultValue
		} else if _, exists := p.defaults[opt.dest]; !exists {
			p.defaults[opt.dest] = nil
		}
	}
	p.logger.Debug("option added", zap.String("option", opt.describe()))
	return nil
}

// AddOption builds an option with the parser's option class and registers it.
func (p *Parser) AddOption(spellings []string, settings D) (*Option, error) {
	opt, err := p.factory(spellings, settings)
	if err != nil {
		return nil, err
	}
	if err := p.Add(opt); err != nil {
		return nil, err
	}
	return opt, nil
}

// MustAddOption is AddOption that panics on error, for option tables fixed at
// compile time.
func (p *Parser) MustAddOption(spellings []string, settings D) *Option {
	opt, err := p.AddOption(spellings, settings)
	if err != nil {
		panic(err)
	}
	return opt
}

// Lookup returns the option owning spelling, or nil.
func (p *Parser) Lookup(spelling string) *Option {
	for _, o := range p.options {
		if o.hasString(spelling) {
			return o
		}
	}
	return nil
}

// Has reports whether spelling is owned by a live option.
func (p *Parser) Has(spelling string) bool { return p.Lookup(spelling) != nil }

// Options returns the live options in insertion order.
func (p *Parser) Options() []*Option { return slices.Clone(p.options) }

// Remove drops the option owning spelling. Each of its spellings goes back to
// the most recently added option that had it disabled, if any.
func (p *Parser) Remove(spelling string) error {
	owner := p.Lookup(spelling)
	if owner == nil {
		return &NotFoundError{Spelling: spelling}
	}
	p.options = lo.Without(p.options, owner)
	for _, s := range owner.strings {
		p.reinstate(s)
	}
	p.logger.Debug("option removed", zap.String("option", owner.describe()))
	return nil
}

func (p *Parser) reinstate(s string) {
	for i := len(p.options) - 1; i >= 0; i-- {
		o := p.options[i]
		if idx := slices.Index(o.disabled, s); idx >= 0 {
			o.disabled = slices.Delete(o.disabled, idx, idx+1)
			o.strings = append(o.strings, s)
			p.logger.Debug("spelling reinstated", zap.String("spelling", s), zap.String("owner", o.describe()))
			return
		}
	}
}

// SetDefaults overlays explicit defaults onto the registry's defaults.
func (p *Parser) SetDefaults(defaults D) {
	for k, v := range defaults {
		p.defaults[k] = v
	}
}

// Defaults returns a copy of the registry's default mapping.
func (p *Parser) Defaults() Values { return p.defaults.Clone() }

// allSpellings lists every live spelling, for suggestions.
func (p *Parser) allSpellings() []string {
	return lo.FlatMap(p.options, func(o *Option, _ int) []string { return o.strings })
}
