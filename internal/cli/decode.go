package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	gradererrors "github.com/RyanNutt/autograding-junit4/internal/errors"
	"github.com/RyanNutt/autograding-junit4/internal/report"
)

func (a *app) newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <encoded|->",
		Short: "Decode an encoded result and print it as JSON",
		Example: `  junit-grader decode eyJ2ZXJzaW9uIjoxLC...
  junit-grader --test-name Calc --test-class CalcTest | junit-grader decode -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoded := args[0]
			if encoded == "-" {
				text, err := a.readInput("-")
				if err != nil {
					return gradererrors.Wrap(err, err.Error())
				}
				encoded = text
			}

			r, err := report.Decode(encoded)
			if err != nil {
				return gradererrors.Wrap(err, "invalid encoded result: "+err.Error())
			}

			data, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return gradererrors.Wrap(err, err.Error())
			}
			_, err = fmt.Fprintln(a.stdout, string(data))
			return err
		},
	}
}
