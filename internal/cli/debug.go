package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/storage"
)

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"backend": string(ctx.Target.Backend),
		"path":    ctx.Target.Display(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *Context) error {
	keys, err := ctx.Store.Keys(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		ctx.println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Document key, with or without the @diabetes_care/ prefix."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	key := cmd.Key
	if !strings.HasPrefix(key, constants.KeyPrefix) {
		key = constants.KeyPrefix + key
	}

	raw, err := ctx.Store.Get(ctx.Ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no document stored under %s", key)
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		// Stored as-is; show it anyway.
		ctx.println(string(raw))
		return nil
	}
	ctx.println(out.String())
	return nil
}
