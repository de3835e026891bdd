package main

import (
	"testing"

	"github.com/nspcc-dev/near-go/internal/testcli"
)

func TestCLIVersion(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Run(t, "near-go", "--version")
	e.CheckNextLine(t, "^NearGo")
	e.CheckNextLine(t, "^Version:")
	e.CheckNextLine(t, "^GoVersion:")
	e.CheckEOF(t)
}
