package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/tarifa/internal/state"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change calculator inputs",
	Long: "Change calculator inputs. Values are kept exactly as typed and read leniently:\n" +
		"\"1500abc\" counts as 1500, anything unreadable as 0.\n\n" +
		"Keys: " + strings.Join(state.Keys(), ", "),
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default inputs (the project log is kept)",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	pairs := make([][2]string, 0, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		key, known := state.CanonicalKey(strings.TrimSpace(k))
		if !known {
			return fmt.Errorf("%w %q (keys: %s)", state.ErrUnknownKey, k, strings.Join(state.Keys(), ", "))
		}
		pairs = append(pairs, [2]string{key, v})
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	var errs []error
	err = s.ctrl.Update(cmd.Context(), func(f *state.Form) {
		for _, p := range pairs {
			if err := f.Set(p[0], p[1]); err != nil {
				errs = append(errs, err)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("saving inputs: %w", err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	f := s.ctrl.Form()
	for _, p := range pairs {
		v, _ := f.Get(p[0])
		fmt.Printf("  %s = %s\n", p[0], v)
	}
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ctrl.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("saving inputs: %w", err)
	}
	fmt.Println("  Inputs reset to defaults.")
	return nil
}
