//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the library and every example.
func (Build) All() error {
	_, err := executeCmd("go", withArgs("build", "./..."), withStream())
	return err
}

// Cross-compiles the platformer example to WebAssembly.
func (Build) Wasm() error {
	_, err := executeCmd("go",
		withArgs("build", "-o", "bin/platformer.wasm", "./examples/platformer"),
		withEnv("GOOS=js", "GOARCH=wasm"),
		withStream())
	return err
}

// Runs vet and the test suite.
func Test() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
