package format

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/pkg/errors"
)

// formatHCL rewrites src in canonical HCL style. hclwrite fixes indentation
// at two spaces, so IndentWidth and UseTabs do not apply.
func formatHCL(src string, _ Options) (string, error) {
	data := []byte(src)
	if _, diags := hclsyntax.ParseConfig(data, "response.hcl", hcl.Pos{Line: 1, Column: 1}); diags.HasErrors() {
		return "", errors.Wrap(diags, "invalid hcl")
	}
	return string(hclwrite.Format(data)), nil
}
