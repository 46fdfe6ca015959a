// Command eldercarectl is a small operator tool for the records API.
//
//	eldercarectl [-api URL] [-email E] [-password P] <command> [args]
//
// Commands:
//
//	caregivers | elderly | assignments
//	salary <caregiver_id> <salary_price> <salary_amount> <saturday_price> <saturday_amount> <allowance_price> <allowance_amount>
//	payslip <caregiver_id> [pdf|xlsx] <out-file>
//	assign <caregiver_id> <elderly_id>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/iliyamo/eldercare-records/internal/client"
	"github.com/iliyamo/eldercare-records/internal/dto"
)

var errUsage = errors.New("usage: eldercarectl [-api URL] [-email E] [-password P] caregivers|elderly|assignments|salary|payslip|assign [args]")

func main() {
	api := flag.String("api", envOr("ELDERCARE_API", "http://localhost:8080"), "API base URL")
	email := flag.String("email", os.Getenv("ELDERCARE_EMAIL"), "login email")
	password := flag.String("password", os.Getenv("ELDERCARE_PASSWORD"), "login password")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, client.New(*api, nil), *email, *password, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, email, password string, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	if err := c.Login(ctx, email, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "caregivers":
		return printJSON(c.Caregivers(ctx))
	case "elderly":
		return printJSON(c.Elderly(ctx))
	case "assignments":
		return printJSON(c.Assignments(ctx))
	case "salary":
		if len(rest) != 7 {
			return errUsage
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		req, err := salaryArgs(rest[1:])
		if err != nil {
			return err
		}
		return printJSON(c.UpdateSalary(ctx, id, req))
	case "payslip":
		return payslip(ctx, c, rest)
	case "assign":
		if len(rest) != 2 {
			return errUsage
		}
		cid, err := parseID(rest[0])
		if err != nil {
			return err
		}
		eid, err := parseID(rest[1])
		if err != nil {
			return err
		}
		return printJSON(c.Assign(ctx, cid, eid))
	}
	return errUsage
}

func payslip(ctx context.Context, c *client.Client, args []string) error {
	format := "pdf"
	switch len(args) {
	case 2:
	case 3:
		format = args[1]
	default:
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	body, err := c.Payslip(ctx, id, format)
	if err != nil {
		return err
	}
	out := args[len(args)-1]
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return err
	}
	return printJSON(map[string]any{"file": out, "bytes": len(body)}, nil)
}

func salaryArgs(a []string) (dto.SalaryUpdate, error) {
	var prices [3]float64
	var amounts [3]int
	for i := 0; i < 3; i++ {
		p, err := strconv.ParseFloat(a[2*i], 64)
		if err != nil {
			return dto.SalaryUpdate{}, fmt.Errorf("bad price %q", a[2*i])
		}
		n, err := strconv.Atoi(a[2*i+1])
		if err != nil {
			return dto.SalaryUpdate{}, fmt.Errorf("bad amount %q", a[2*i+1])
		}
		prices[i], amounts[i] = p, n
	}
	return dto.SalaryUpdate{
		SalaryPrice: &prices[0], SalaryAmount: &amounts[0],
		SaturdayPrice: &prices[1], SaturdayAmount: &amounts[1],
		AllowancePrice: &prices[2], AllowanceAmount: &amounts[2],
	}, nil
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("bad id %q", s)
	}
	return id, nil
}

func printJSON(v any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
