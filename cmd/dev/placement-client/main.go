// Smoke tool for poking a running backend with the gateway client. Not
// part of the dashboard itself; handy while developing against a local
// server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:5000", "Backend base URL")
		username = flag.String("user", "admin", "Login username")
		password = flag.String("pass", "admin123", "Login password")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := placement.DefaultConfig()
	cfg.BaseURL = *baseURL

	login, err := placement.NewDefaultClient(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	result, err := login.Login(ctx, *username, *password)
	login.Close()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("logged in: role=%s username=%s\n", result.Role, result.Username)

	client, err := placement.NewDefaultClient(cfg, placement.StaticToken(result.AccessToken))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	me, err := client.Me(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("me: %+v\n", me)

	switch result.Role {
	case "admin":
		users, err := client.ListUsers(ctx, "")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("users: %d\n", len(users))
		opps, err := client.Opportunities(ctx, placement.ScopeAdmin)
		if err != nil {
			log.Fatal(err)
		}
		for _, o := range opps {
			fmt.Printf("placement %d: %s / %s\n", o.ID, o.CompanyName, o.RoleTitle)
		}
	case "student":
		report, err := client.Status(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("status: %s, %d applications\n", report.PlacementStatus, len(report.Applications))
	case "company":
		report, err := client.CompanyReports(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("reports: %d students, avg cgpa %.2f\n", report.TotalStudents, report.AverageCGPA)
	}
}
