// Command createadmin grants admin-panel access to an existing Firebase user.
//
//	createadmin -uid <firebase-uid>
//
// The user must already exist in Firebase Authentication; their email is read
// from there and stored alongside the admin flag.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caregiver-app/picto-admin-backend/config"
	"github.com/caregiver-app/picto-admin-backend/internal/auth"
	"github.com/caregiver-app/picto-admin-backend/internal/bootstrap"
)

func main() {
	uid := flag.String("uid", "", "Firebase Auth UID of the user to promote")
	flag.Parse()

	if *uid == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -uid <firebase-uid>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fb, err := bootstrap.OpenFirebase(ctx, cfg.Firebase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize firebase: %v\n", err)
		os.Exit(1)
	}
	defer fb.Close()

	user, err := fb.Auth.GetUser(ctx, *uid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lookup user %s: %v\n", *uid, err)
		os.Exit(1)
	}

	if err := auth.NewAdminRepo(fb.Firestore).Grant(ctx, user.UID, user.Email); err != nil {
		fmt.Fprintf(os.Stderr, "grant admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("granted admin access to %s (%s)\n", user.UID, user.Email)
}
