package main

import (
	"os/exec"
	"strings"
)

// externalCommandConverter builds a routecraft.TypeConverter that runs an
// external command (configured via routecraft.toml) to convert a raw
// argument: the raw value is passed as the command's final argument, and
// its trimmed stdout becomes the converted string value.
func externalCommandConverter(command []string) func(raw string) (any, error) {
	name := command[0]
	fixedArgs := command[1:]
	return func(raw string) (any, error) {
		args := append(append([]string{}, fixedArgs...), raw)
		out, err := exec.Command(name, args...).Output()
		if err != nil {
			return nil, err
		}
		return strings.TrimSpace(string(out)), nil
	}
}
