package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/tilegen/source"
)

func main() {
	for _, fileName := range os.Args[1:] {
		fmt.Println("=====================")
		fmt.Println("File name:", fileName)
		fmt.Println("---------------------")
		content, err := os.ReadFile(fileName)
		if err != nil {
			fmt.Println("ReadFile error:", err)
			continue
		}

		lexer := source.NewPixelMapLexer(
			parseutil.NewBufferedByteLocationReaderFromSlice(
				fileName,
				content))
		for {
			token, err := lexer.Next()
			if err == io.EOF {
				break
			} else if err != nil {
				fmt.Println("Lex error:", err)
				continue
			}

			fmt.Println(token)
		}

		emitter := &parseutil.Emitter{}
		grid := source.ParsePixelMap(
			parseutil.NewBufferedByteLocationReaderFromSlice(fileName, content),
			emitter)
		if grid != nil {
			fmt.Printf("Pixel map: %dx%d\n", grid.Width(), grid.Height())
		}

		errs := emitter.Errors()
		if len(errs) > 0 {
			fmt.Println("---------------------------")
			fmt.Println("Found", len(errs), "errors:")
			fmt.Println("---------------------------")
			for idx, err := range errs {
				fmt.Printf("error %d: %s\n", idx, err)
			}
		}
	}
}
