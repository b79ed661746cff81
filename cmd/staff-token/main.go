// Command staff-token prepares staff credentials for the server. It
// either bcrypt-hashes a password for STAFF_PASSWORD_HASH or mints an
// access token signed with JWT_SECRET for scripted admin calls.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iliyamo/library-seat-monitor/internal/config"
	"github.com/iliyamo/library-seat-monitor/internal/model"
	"github.com/iliyamo/library-seat-monitor/internal/utils"
)

func main() {
	hash := flag.Bool("hash", false, "read a password from stdin and print its bcrypt hash")
	subject := flag.String("sub", "", "token subject (defaults to STAFF_USERNAME)")
	ttl := flag.Int("ttl", 0, "token lifetime in minutes (defaults to ACCESS_TOKEN_TTL_MIN)")
	flag.Parse()

	cfg := config.Load()

	if *hash {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fatalf("read password: %v", err)
		}
		h, err := utils.HashPassword(strings.TrimRight(line, "\r\n"), cfg.BcryptCost)
		if err != nil {
			fatalf("hash: %v", err)
		}
		fmt.Println(h)
		return
	}

	if cfg.JWTSecret == "" {
		fatalf("JWT_SECRET is not set")
	}
	sub := *subject
	if sub == "" {
		sub = cfg.StaffUsername
	}
	minutes := *ttl
	if minutes <= 0 {
		minutes = cfg.AccessTTLMin
	}
	tok, err := utils.NewAccessToken(cfg.JWTSecret, sub, model.RoleStaff, minutes)
	if err != nil {
		fatalf("sign: %v", err)
	}
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format("2006-01-02 15:04:05 MST"))
	fmt.Println(tok.Token)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "staff-token: "+format+"\n", args...)
	os.Exit(1)
}
