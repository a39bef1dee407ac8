package main

import (
	"fmt"
	"os"
	"strings"

	"ticketdesk-service/internal/client"
	"ticketdesk-service/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

func main() {
	apiURL := pflag.String("api", "http://localhost:8080", "base URL of the ticketdesk server")
	exhibitionList := pflag.String("exhibitions", "japan,chagall", "comma-separated exhibitions to show")
	tokenFile := pflag.String("token-file", "", "path of the cached token file (defaults to the user config dir)")
	pflag.Parse()

	path := *tokenFile
	if path == "" {
		var err error
		path, err = client.DefaultTokenPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot resolve token path: %v\n", err)
			os.Exit(1)
		}
	}
	store := client.NewTokenStore(path)

	token, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read cached token: %v\n", err)
		os.Exit(1)
	}

	var exhibitions []string
	for _, exhibition := range strings.Split(*exhibitionList, ",") {
		exhibition = strings.TrimSpace(exhibition)
		if exhibition != "" {
			exhibitions = append(exhibitions, exhibition)
		}
	}
	if len(exhibitions) == 0 {
		fmt.Fprintln(os.Stderr, "no exhibitions configured")
		os.Exit(1)
	}

	api := client.New(*apiURL, token)
	model := tui.New(api, store, exhibitions)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "desk error: %v\n", err)
		os.Exit(1)
	}
}
