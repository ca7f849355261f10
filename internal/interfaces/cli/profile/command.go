package profile

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
)

var basePath string

// File is the on-disk form of a merge profile.
type File struct {
	Key          string `yaml:"key"`
	Name         string `yaml:"name"`
	GlobalConfig string `yaml:"global_config"`
	Rules        string `yaml:"rules"`
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Clash config profile tools",
	}

	check := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a profile file",
		Long: `Validate a profile file (key, name, global_config, rules) the same way the
admin API does. With --base the profile is merged into that document and the
result is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
	check.Flags().StringVar(&basePath, "base", "", "Clash document to merge the profile into")

	cmd.AddCommand(check)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}

	var base []byte
	if basePath != "" {
		if base, err = os.ReadFile(basePath); err != nil {
			return fmt.Errorf("failed to read base document: %w", err)
		}
	}

	return Check(cmd.OutOrStdout(), data, base)
}

// Check validates a profile document and, when base is non-empty, writes
// the merged document to w.
func Check(w io.Writer, data, base []byte) error {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("profile is not valid YAML: %w", err)
	}

	p, err := clashconfig.NewProfile(f.Key, f.Name, f.GlobalConfig, f.Rules)
	if err != nil {
		return err
	}

	if len(base) == 0 {
		rules, _ := clashconfig.CompileRules(f.Rules)
		_, err := fmt.Fprintf(w, "profile %q is valid: %d rule(s), global config %s\n",
			p.Key(), len(rules), presence(p.GlobalConfig()))
		return err
	}

	merged, err := clashconfig.Merge(string(base), p)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, merged)
	return err
}

func presence(s *string) string {
	if s == nil {
		return "absent"
	}
	return "present"
}
