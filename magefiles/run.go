//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the platformer example.
func (Run) Demo() error {
	mg.Deps(Build.All)
	_, err := executeCmd("go", withArgs("run", "./examples/platformer"), withStream())
	return err
}
