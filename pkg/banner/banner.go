// Package banner prints the startup banner and effective configuration.
package banner

import (
	"fmt"

	"familyconnect/pkg/config"
)

const banner = `
███████╗ █████╗ ███╗   ███╗██╗██╗  ██╗   ██╗     ██████╗ ██████╗ ███╗   ██╗███╗   ██╗███████╗ ██████╗████████╗
██╔════╝██╔══██╗████╗ ████║██║██║  ╚██╗ ██╔╝    ██╔════╝██╔═══██╗████╗  ██║████╗  ██║██╔════╝██╔════╝╚══██╔══╝
█████╗  ███████║██╔████╔██║██║██║   ╚████╔╝     ██║     ██║   ██║██╔██╗ ██║██╔██╗ ██║█████╗  ██║        ██║
██╔══╝  ██╔══██║██║╚██╔╝██║██║██║    ╚██╔╝      ██║     ██║   ██║██║╚██╗██║██║╚██╗██║██╔══╝  ██║        ██║
██║     ██║  ██║██║ ╚═╝ ██║██║███████╗██║       ╚██████╗╚██████╔╝██║ ╚████║██║ ╚████║███████╗╚██████╗   ██║
╚═╝     ╚═╝  ╚═╝╚═╝     ╚═╝╚═╝╚══════╝╚═╝        ╚═════╝ ╚═════╝ ╚═╝  ╚═══╝╚═╝  ╚═══╝╚══════╝ ╚═════╝   ╚═╝
`

// Print shows the listen address, storage path and feature switches so ops
// can verify what binary and config are active.
func Print(cfg *config.Config, version, source string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:    %s\n", cfg.Addr())
	fmt.Printf("DB Path:   %s\n", cfg.Server.DBPath)
	if version != "" {
		fmt.Printf("Version:   %s\n", version)
	}
	if source != "" {
		fmt.Printf("Config:    %s\n", source)
	}
	if cfg.AssistantOnline() {
		fmt.Printf("Assistant: online (%s)\n", cfg.Assistant.Model)
	} else {
		fmt.Println("Assistant: offline (canned replies)")
	}
	if cfg.Retention.Enabled {
		fmt.Printf("Retention: %s (lifetime %s)\n", cfg.Retention.Cron, cfg.Retention.Lifetime.Duration())
	}

	fmt.Println("\n== Examples ===================================================")
	fmt.Printf("curl 'http://%s/v1/chats'\n", cfg.Addr())
	fmt.Printf("curl -X POST 'http://%s/v1/chats/c2/messages' -d '{\"text\": \"hello\"}'\n", cfg.Addr())
	fmt.Printf("curl 'http://%s/v1/statuses?scope=family'\n", cfg.Addr())

	if len(cfg.Security.APIKeys.Frontend) == 0 {
		fmt.Println("\n== Production? =================================================")
		fmt.Println("- Frontend API keys: MISSING (anyone can reach the API)")
		fmt.Println("- Set a proper storage path (--db)")
	}
	fmt.Println()
}
