package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/js216/fw-utils/internal/simreg"
	"github.com/js216/fw-utils/reg"
)

// mapFile is the on-disk JSON description of a register map: register
// geometry plus the named fields within it.
type mapFile struct {
	RegWidth uint8       `json:"reg_width"`
	RegNum   int         `json:"reg_num"`
	Fields   []fieldSpec `json:"fields"`
}

type fieldSpec struct {
	Name  string   `json:"name"`
	Reg   uint32   `json:"reg"`
	Offs  uint8    `json:"offs"`
	Width uint8    `json:"width"`
	Flags []string `json:"flags"`
}

var flagNames = map[string]reg.Flag{
	"READONLY":  reg.READONLY,
	"WRITEONLY": reg.WRITEONLY,
	"VOLATILE":  reg.VOLATILE,
	"NOCOMM":    reg.NOCOMM,
	"ALIAS":     reg.ALIAS,
	"DESCEND":   reg.DESCEND,
	"MSR_FIRST": reg.MSR_FIRST,
	"NORESET":   reg.NORESET,
}

func parseFlags(names []string) (reg.Flag, error) {
	var f reg.Flag
	for _, n := range names {
		bit, ok := flagNames[n]
		if !ok {
			return 0, fmt.Errorf("unknown flag %q", n)
		}
		f |= bit
	}
	return f, nil
}

func loadMapFile(path string) (*mapFile, []reg.Field, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read map file: %w", err)
	}

	var mf mapFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, nil, fmt.Errorf("parse map file: %w", err)
	}

	fields := make([]reg.Field, len(mf.Fields))
	for i, fs := range mf.Fields {
		flags, err := parseFlags(fs.Flags)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", fs.Name, err)
		}
		fields[i] = reg.Field{
			Name:  fs.Name,
			Reg:   fs.Reg,
			Offs:  fs.Offs,
			Width: fs.Width,
			Flags: flags,
		}
	}

	return &mf, fields, nil
}

func loadState(path string, n int) []uint32 {
	data := make([]uint32, n)
	raw, err := os.ReadFile(path)
	if err != nil {
		return data
	}
	_ = json.Unmarshal(raw, &data)
	if len(data) < n {
		grown := make([]uint32, n)
		copy(grown, data)
		data = grown
	}
	return data[:n]
}

func saveState(path string, data []uint32) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// buildDevice loads the map and persisted state named by the command's
// --map/--state flags and wires them to a fresh simreg.Bus.
func buildDevice(cmd *cobra.Command) (*reg.Device, *simreg.Bus, string) {
	mapPath := getString(cmd, "map")
	statePath := getString(cmd, "state")

	mf, fields, err := loadMapFile(mapPath)
	if err != nil {
		fail("%v", err)
	}

	bus := simreg.NewBus(mf.RegNum)
	bus.Load(loadState(statePath, mf.RegNum))

	d := &reg.Device{
		RegWidth: mf.RegWidth,
		Data:     bus.Snapshot(),
		FieldMap: fields,
		ReadFn:   bus.ReadFn,
		WriteFn:  bus.WriteFn,
		Arg:      0,
	}
	return d, bus, statePath
}
