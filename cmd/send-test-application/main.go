package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"revenue_leak_audit/config"
	"revenue_leak_audit/models"
	"revenue_leak_audit/services"
	"strings"
	"time"

	"golang.org/x/term"
)

func main() {
	yes := flag.Bool("y", false, "send without asking for confirmation")
	company := flag.String("company", "Relay Check Ltd", "company name used in the subject line")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if err := checkRelay(cfg); err != nil {
		log.Fatal(err)
	}

	relay, err := services.NewRelay(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize form relay: %v", err)
	}

	record := models.FormRecord{
		FullName:       "Test Applicant",
		Company:        *company,
		Email:          cfg.ContactEmail,
		BrandChannel:   cfg.AppURL,
		Offer:          "Relay credentials check",
		Implementation: models.ImplementationNo,
	}

	fmt.Println("=== Send Test Application ===")
	fmt.Println()
	fmt.Printf("Relay:   %s\n", cfg.RelayProvider)
	fmt.Printf("Subject: %s\n", services.BuildSubject(record))
	fmt.Println()

	// Only prompt on an interactive terminal; piped runs need -y
	if !*yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			log.Fatal("Refusing to send without confirmation; pass -y")
		}
		fmt.Print("Send it? [y/N]: ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payload := services.BuildPayload(services.RelaySettings{
		AccessKey: cfg.RelayAccessKey,
		FromName:  cfg.RelayFromName,
	}, record)

	resp, err := relay.Submit(ctx, payload)
	if err != nil {
		log.Fatalf("Failed to send test application: %v", err)
	}
	if !resp.Success {
		log.Fatalf("Relay rejected the test application: %s", resp.Message)
	}

	fmt.Println()
	fmt.Println("✓ Test application sent")
	if resp.Message != "" {
		fmt.Printf("  Relay says: %s\n", resp.Message)
	}
}

// checkRelay refuses to run against the log relay when it only stands in for missing credentials
func checkRelay(cfg *config.Config) error {
	if cfg.RelayFallback {
		return fmt.Errorf("relay credentials are missing, nothing would be sent; set the credentials for RELAY_PROVIDER or use RELAY_PROVIDER=%s explicitly", config.RelayLog)
	}
	return nil
}
