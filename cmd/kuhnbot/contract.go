package main

import (
	"fmt"
	"reflect"

	"github.com/kuhnlab/kuhnbot/internal/contract"
)

type ContractCmd struct {
	Write string `kong:"help='Write the contract artifact JSON to this path'"`
	Check string `kong:"help='Validate an existing artifact and compare it against the registry'"`
}

func (c *ContractCmd) Run() error {
	if c.Write == "" && c.Check == "" {
		return fmt.Errorf("specify --write or --check")
	}

	if c.Write != "" {
		artifact := contract.BuildArtifact()
		if err := artifact.Validate(); err != nil {
			return fmt.Errorf("built artifact failed validation: %w", err)
		}
		if err := artifact.WriteFile(c.Write); err != nil {
			return err
		}
		fmt.Printf("Wrote contract %s.%s to %s\n", artifact.ContractName, artifact.Version, c.Write)
	}

	if c.Check != "" {
		loaded, err := contract.LoadArtifact(c.Check)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("artifact %s is invalid: %w", c.Check, err)
		}
		if !reflect.DeepEqual(loaded, contract.BuildArtifact()) {
			return fmt.Errorf("artifact %s has drifted from the registry constants", c.Check)
		}
		fmt.Printf("Artifact %s matches the registry\n", c.Check)
	}

	return nil
}
