// _example/example.go
package main

import (
	"fmt"

	"github.com/kenshaw/symdmp"
	"github.com/kenshaw/symdmp/text"
)

const (
	text1 = "Lorem ipsum dolor."
	text2 = "Lorem dolor sit amet."
)

func main() {
	codec := text.NewCodec(text.Chars{})
	config := symdmp.NewDefaultConfig[string](codec)
	diffs := config.DiffMain(text.Chars{}.Parse(text1), text.Chars{}.Parse(text2))
	diffs = config.DiffCleanupSemantic(diffs)
	fmt.Println(config.DiffPrettyText(diffs))
}
