package replay_test

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdshortcut/pkg/replay"
)

// Benchmark typing a document that fires most shortcut patterns.
func BenchmarkTypist_Type(b *testing.B) {
	script := strings.Repeat("## Heading\n"+
		"plain **bold** *italic* ~~gone~~ `code` [go](https://go.dev) text\n"+
		"- one\ntwo\n\n"+
		"3. three\nfour\n\n"+
		"> quoted\n\n"+
		"---\n", 10)

	b.ResetTimer()
	for range b.N {
		typist := replay.New(replay.Options{Logger: log.New(io.Discard)})
		if err := typist.Type(script); err != nil {
			b.Fatal(err)
		}
		typist.Close()
	}
}

// Benchmark a long plain line where every space rescans the line.
func BenchmarkTypist_LongLine(b *testing.B) {
	script := strings.Repeat("word ", 400)

	b.ResetTimer()
	for range b.N {
		typist := replay.New(replay.Options{Logger: log.New(io.Discard)})
		if err := typist.Type(script); err != nil {
			b.Fatal(err)
		}
		typist.Close()
	}
}
