package prettier

import (
	"github.com/ignite/response-prettier/internal/config"
	"github.com/ignite/response-prettier/internal/onsend"
	"github.com/ignite/response-prettier/internal/pkg/logger"
	"github.com/pkg/errors"
)

// Host is the part of the server the prettier plugs into.
type Host interface {
	Decorate(name string, v any) error
	AddHook(h onsend.Hook)
}

// Prettier bundles the resolved settings, the formatter and the hook.
type Prettier struct {
	settings  Settings
	formatter *Formatter
	hook      *Hook
}

// New resolves cfg and builds the formatter and hook without registering
// them anywhere.
func New(cfg config.PrettierConfig) (*Prettier, error) {
	s, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}
	f := NewFormatter(s.formatterOptions)
	return &Prettier{
		settings:  s,
		formatter: f,
		hook:      NewHook(s, f),
	}, nil
}

// Register builds a Prettier from cfg, decorates host with its FormatFunc
// and installs the hook unless enable_on_send_hook is false.
func Register(host Host, cfg config.PrettierConfig) (*Prettier, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if err := host.Decorate(p.settings.Decorator, FormatFunc(p.formatter.Format)); err != nil {
		return nil, errors.Wrap(err, "prettier: decorate host")
	}
	if p.settings.EnableOnSendHook {
		host.AddHook(p.hook)
	}

	logger.Info("prettier registered",
		"decorator", p.settings.Decorator,
		"hook", p.settings.EnableOnSendHook,
		"always_on", p.settings.AlwaysOn,
	)
	return p, nil
}

// Settings returns the resolved settings.
func (p *Prettier) Settings() Settings { return p.settings }

// Formatter returns the formatter decorated onto the host.
func (p *Prettier) Formatter() *Formatter { return p.formatter }

// Hook returns the outbound hook.
func (p *Prettier) Hook() *Hook { return p.hook }
