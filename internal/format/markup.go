package format

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// markupEngine re-indents XML. In permissive mode it accepts the looser
// markup HTML documents tend to carry (unknown entities, unquoted attributes).
type markupEngine struct {
	permissive bool
}

func (m markupEngine) Format(src string, opts Options) (string, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = m.permissive
	if err := doc.ReadFromString(src); err != nil {
		return "", errors.Wrap(err, "invalid markup")
	}
	if doc.Root() == nil {
		return "", errors.New("invalid markup: no root element")
	}

	if opts.UseTabs {
		doc.IndentTabs()
	} else {
		doc.Indent(opts.IndentWidth)
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, "write markup")
	}
	return out, nil
}
