package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/makt28/updown/internal/web"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password PASSWORD",
	Short: "Print a bcrypt hash for server.passwordHash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := web.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
