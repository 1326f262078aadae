package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storefront-kit/selectord/pkg/model"
	"github.com/storefront-kit/selectord/pkg/schema"
	"github.com/storefront-kit/selectord/pkg/store"
	selsync "github.com/storefront-kit/selectord/pkg/sync"
)

var resolveFile string

// resolveCmd prints the resolved placements of a header document.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the resolved placements of a header document",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(resolveFile)
		if err != nil {
			return err
		}
		if err := schema.Validate(raw); err != nil {
			return err
		}
		var doc model.HeaderDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("%s: %w", model.ParseErrorCode, err)
		}

		state := store.NewState()
		state.Update(resolveFile, doc)
		mux, err := selsync.NewMux(state)
		if err != nil {
			return err
		}

		var out bytes.Buffer
		if err := json.Indent(&out, []byte(mux.Snapshot()), "", "  "); err != nil {
			return err
		}
		out.WriteByte('\n')
		_, err = out.WriteTo(cmd.OutOrStdout())
		return err
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveFile, "file", "f", "", "Header document to resolve")
	_ = resolveCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(resolveCmd)
}
