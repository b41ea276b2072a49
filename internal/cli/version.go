package cli

import (
	"fmt"
	"io"
)

// version is set with -ldflags "-X github.com/ysh86/lspng/internal/cli.version=..."
var version = "dev"

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "lspng %s\n", version)
}
