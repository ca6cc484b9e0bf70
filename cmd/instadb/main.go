package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/autom8ter/instadb"
	"github.com/autom8ter/instadb/util"
	"github.com/spf13/cobra"
)

var flags struct {
	appID      string
	adminToken string
	baseURL    string
	logLevel   string
	configFile string
	asEmail    string
	asToken    string
	asGuest    bool
	debug      bool
}

func main() {
	cmd := &cobra.Command{
		Use:   "instadb",
		Short: "instadb administers an app's data, users, and storage over the admin API",
	}
	cmd.PersistentFlags().StringVar(&flags.appID, "app-id", os.Getenv("INSTADB_APP_ID"), "app id")
	cmd.PersistentFlags().StringVar(&flags.adminToken, "token", os.Getenv("INSTADB_ADMIN_TOKEN"), "admin token")
	cmd.PersistentFlags().StringVar(&flags.baseURL, "base-url", os.Getenv("INSTADB_BASE_URL"), "admin API base url")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "path to a yaml/json config file")
	cmd.PersistentFlags().StringVar(&flags.asEmail, "as-email", "", "impersonate the user with this email")
	cmd.PersistentFlags().StringVar(&flags.asToken, "as-token", "", "impersonate the user holding this refresh token")
	cmd.PersistentFlags().BoolVar(&flags.asGuest, "as-guest", false, "impersonate an unauthenticated guest")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "evaluate permission rules as a dry-run without committing")
	cmd.AddCommand(queryCmd(), transactCmd(), usersCmd(), storageCmd())
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newClient() (*instadb.Client, error) {
	config := instadb.Config{
		AppID:      flags.appID,
		AdminToken: flags.adminToken,
		BaseURL:    flags.baseURL,
		LogLevel:   flags.logLevel,
	}
	if flags.configFile != "" {
		bits, err := os.ReadFile(flags.configFile)
		if err != nil {
			return nil, err
		}
		bits, err = util.YAMLToJSON(bits)
		if err != nil {
			return nil, err
		}
		var fileConfig instadb.Config
		if err := json.Unmarshal(bits, &fileConfig); err != nil {
			return nil, err
		}
		if config.AppID == "" {
			config.AppID = fileConfig.AppID
		}
		if config.AdminToken == "" {
			config.AdminToken = fileConfig.AdminToken
		}
		if config.BaseURL == "" {
			config.BaseURL = fileConfig.BaseURL
		}
	}
	client, err := instadb.New(config)
	if err != nil {
		return nil, err
	}
	switch {
	case flags.asEmail != "":
		return client.AsEmail(flags.asEmail)
	case flags.asToken != "":
		return client.AsToken(flags.asToken)
	case flags.asGuest:
		return client.AsGuest(), nil
	}
	return client, nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		bits, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		return util.YAMLToJSON(bits)
	}
	bits, err := os.ReadFile("/dev/stdin")
	if err != nil {
		return nil, err
	}
	return util.YAMLToJSON(bits)
}

func printJSON(value any) {
	fmt.Println(util.JSONString(value))
}
