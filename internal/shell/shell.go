// Package shell produces the wrapper functions that make a selection
// actually change the caller's working directory. A child process
// cannot cd its parent, so the wrapper runs the navigator with an
// output file and cds to whatever it wrote.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quickswitch/internal/errors"
)

// Supported lists the shells InitScript can generate for.
var Supported = []string{"bash", "zsh", "fish", "powershell"}

const bashScript = `# quickswitch shell integration
# Add to your shell profile:  eval "$(qs init bash)"
qs() {
    local out
    out="$(mktemp "${TMPDIR:-/tmp}/qs-select.XXXXXX")"
    command qs --output "$out" "$@"
    if [ -s "$out" ]; then
        cd "$(cat "$out")" || return
    fi
    rm -f "$out"
}

qshs() {
    qs --history "$@"
}
`

const fishScript = `# quickswitch shell integration
# Add to your fish config:  qs init fish | source
function qs
    set -l out (mktemp)
    command qs --output $out $argv
    if test -s $out
        cd (cat $out)
    end
    rm -f $out
end

function qshs
    qs --history $argv
end
`

const powershellScript = `# quickswitch shell integration
# Add to your PowerShell profile:  Invoke-Expression (& qs init powershell | Out-String)
function qs {
    $out = [System.IO.Path]::GetTempFileName()
    & (Get-Command qs -CommandType Application) --output $out @Args
    if ((Get-Item $out).Length -gt 0) {
        Set-Location (Get-Content $out -Raw).Trim()
    }
    Remove-Item $out -ErrorAction SilentlyContinue
}

function qshs {
    qs --history @Args
}
`

// InitScript returns the integration script for the named shell. zsh
// shares the bash script.
func InitScript(name string) (string, error) {
	switch strings.ToLower(name) {
	case "bash", "zsh":
		return bashScript, nil
	case "fish":
		return fishScript, nil
	case "powershell", "pwsh":
		return powershellScript, nil
	default:
		return "", errors.Newf("unsupported shell %q (expected one of %s)", name, strings.Join(Supported, ", "))
	}
}

// WriteSelection writes the chosen absolute path to the output file for
// the wrapper to consume. An empty outPath falls back to the
// QS_SELECT_PATH environment variable; with neither set the path is
// printed to stdout.
func WriteSelection(outPath, selected string) error {
	if outPath == "" {
		outPath = os.Getenv("QS_SELECT_PATH")
	}
	if outPath == "" {
		fmt.Println(selected)
		return nil
	}

	abs, err := filepath.Abs(selected)
	if err != nil {
		return errors.WrapKindf(err, errors.IoFailure, "resolve selection %s", selected)
	}
	if err := os.WriteFile(outPath, []byte(abs+"\n"), 0o644); err != nil {
		return errors.WrapKindf(err, errors.IoFailure, "write selection to %s", outPath)
	}
	return nil
}
