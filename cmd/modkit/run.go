// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"modkit/internal/launch"

	"github.com/spf13/cobra"
)

// runCmd launches the platform against a staged module.
var runCmd = &cobra.Command{
	Use:   "run [owner name version] [-- args...]",
	Short: "Run a staged module on the platform",
	Long: `Run a staged module: resolve the platform runtime jars, build the
classpath (staged module directory, its lib/ jars, platform jars),
and launch the platform subprocess with inherited standard streams.

Arguments before a "--" separator select the module identity: either
none (the identity comes from project.toml) or all three of owner,
name, and version. Everything after the separator is passed to the
module verbatim, so flags like -conf reach the module instead of being
parsed here.

The JVM binary is taken from MODKIT_JAVA, falling back to java_cmd in
the tool configuration.

Examples:
  modkit run
  modkit run acme worker 1.0.0
  modkit run -- -conf conf.json
  modkit run acme worker 1.0.0 -- --port 8080`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

// splitRunIdentity splits the positional arguments into the identity
// triple and the module arguments. dashAt is cobra's ArgsLenAtDash:
// the number of arguments before a "--" separator, or -1 when there is
// none. Identity tokens are the arguments before the separator (all of
// them when there is no separator); there must be none or at least
// three, the remainder going to the module verbatim.
func splitRunIdentity(dashAt int, args []string) (owner, name, version string, moduleArgs []string, err error) {
	idArgs := args
	if dashAt >= 0 {
		idArgs = args[:dashAt]
		moduleArgs = args[dashAt:]
	}

	switch {
	case len(idArgs) == 0:
		// Identity defaults from project configuration.
	case len(idArgs) >= 3:
		owner, name, version = idArgs[0], idArgs[1], idArgs[2]
		moduleArgs = append(append([]string(nil), idArgs[3:]...), moduleArgs...)
	default:
		return "", "", "", nil, fmt.Errorf("expected either no identity arguments or all of owner, name, and version before '--' (got %d)", len(idArgs))
	}
	return owner, name, version, moduleArgs, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}

	owner, name, version, moduleArgs, err := splitRunIdentity(cmd.ArgsLenAtDash(), args)
	if err != nil {
		return err
	}

	resolver, err := newResolver()
	if err != nil {
		return err
	}

	launcher := &launch.Launcher{
		Project:  cfg,
		Platform: resolver,
		Java:     cfgRoot.Config.JavaCmd,
		Timeout:  cfgRoot.Config.RunTimeout(),
	}

	err = launcher.Invoke(cmd.Context(), owner, name, version, moduleArgs)
	if err == nil {
		return nil
	}

	var execErr *launch.ExecError
	if errors.As(err, &execErr) {
		// Propagate the module's exit status without re-printing; its
		// output already went to the inherited streams.
		return &ExitError{Code: int(execErr.Code), Err: err}
	}

	var canceled *launch.CanceledError
	if errors.As(err, &canceled) {
		fmt.Println(WarningStyle.Render("Run canceled: ") + canceled.Err.Error())
		return &ExitError{Code: 1, Err: err}
	}

	return fmt.Errorf("failed to run module: %w", err)
}
