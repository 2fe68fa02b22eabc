// Command scenectl - утилита для отладки без воркера: строит сцену из сохраненного
// output.txt и печатает input.txt для заданных параметров.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
