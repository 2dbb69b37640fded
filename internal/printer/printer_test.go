package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Output(t *testing.T) {
	var out, errOut bytes.Buffer
	p := New(&out, &errOut)

	p.Section("Accents")
	p.Successf("%d loaded", 14)
	p.Infof("theme %s", "gruvbox")
	p.Warnf("careful")
	p.Printf("plain")
	p.Errorf("broken: %s", "x")

	got := ansi.Strip(out.String())
	assert.Contains(t, got, "Accents\n───────\n")
	assert.Contains(t, got, "✔ 14 loaded\n")
	assert.Contains(t, got, "● theme gruvbox\n")
	assert.Contains(t, got, "! careful\n")
	assert.Contains(t, got, "plain\n")
	assert.NotContains(t, got, "broken")

	assert.Equal(t, "✘ broken: x\n", ansi.Strip(errOut.String()))
}

func TestCtx(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))

	assert.NotNil(t, Ctx(context.Background()))
}

func TestPrinter_Items(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out)

	p.CheckItem("Config file", "/tmp/config.yaml")
	p.WarnItem("TERM", "dumb")
	p.FailItem("TTY", "")

	assert.Equal(t,
		"  ✔ Config file /tmp/config.yaml\n  ● TERM dumb\n  ✘ TTY\n",
		ansi.Strip(out.String()))
}
