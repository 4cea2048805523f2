package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/phrasebook/internal/datasync"
)

func newSyncCommand() *cobra.Command {
	syncCommand := &cobra.Command{
		Use:   "sync",
		Short: "Share the saved phrases between devices with a sync code",
	}
	var code string
	syncCommand.PersistentFlags().StringVar(&code, "code", "", "Sync code to use instead of the saved one")

	syncCommand.AddCommand(newSyncCodeCommand())
	syncCommand.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Upload the saved phrases, replacing what the sync code had",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, code, func(ctx context.Context, reconciler *datasync.Reconciler, code string) error {
				result, err := reconciler.Push(ctx, code)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d phrases\n", result.Count)
				return nil
			})
		},
	})
	syncCommand.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Download the phrases of the sync code and merge them into the saved ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, code, func(ctx context.Context, reconciler *datasync.Reconciler, code string) error {
				result, err := reconciler.Pull(ctx, code)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d phrases\n", len(result.Phrases))
				return nil
			})
		},
	})
	return syncCommand
}

func runSync(cmd *cobra.Command, code string, do func(context.Context, *datasync.Reconciler, string) error) error {
	ctx := cmd.Context()
	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = app.Close()
	}()

	if code == "" {
		code, err = datasync.NewCodeStore(app.store, app.bus).Get(ctx)
		if err != nil {
			return fmt.Errorf("codeStore.Get() > %w", err)
		}
	}
	remote := datasync.NewHTTPRemote(app.cfg.Sync.BaseURL, app.cfg.Sync.RetryAttempts)
	err = do(ctx, datasync.NewReconciler(app.repository, remote), code)
	if errors.Is(err, datasync.ErrNoSyncCode) {
		return errors.New("no sync code is set: run `phrasebook sync code generate` or `phrasebook sync code set <code>`")
	}
	return err
}

func newSyncCodeCommand() *cobra.Command {
	codeCommand := &cobra.Command{
		Use:   "code",
		Short: "Manage the sync code of this device",
	}

	withCodeStore := func(run func(*cobra.Command, []string, *datasync.CodeStore) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close()
			}()
			return run(cmd, args, datasync.NewCodeStore(app.store, app.bus))
		}
	}

	codeCommand.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Generate a new sync code and use it on this device",
		Args:  cobra.NoArgs,
		RunE: withCodeStore(func(cmd *cobra.Command, args []string, codes *datasync.CodeStore) error {
			code := datasync.GenerateCode(rand.New(rand.NewSource(time.Now().UnixNano())))
			if err := codes.Set(cmd.Context(), code); err != nil {
				return fmt.Errorf("codeStore.Set() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sync code: %s\nAnyone with this code can read and overwrite your synced phrases.\n", code)
			return nil
		}),
	})
	codeCommand.AddCommand(&cobra.Command{
		Use:   "set <code>",
		Short: "Use an existing sync code on this device",
		Args:  cobra.ExactArgs(1),
		RunE: withCodeStore(func(cmd *cobra.Command, args []string, codes *datasync.CodeStore) error {
			if err := codes.Set(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("codeStore.Set() > %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sync code saved")
			return nil
		}),
	})
	codeCommand.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the sync code of this device",
		Args:  cobra.NoArgs,
		RunE: withCodeStore(func(cmd *cobra.Command, args []string, codes *datasync.CodeStore) error {
			code, err := codes.Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("codeStore.Get() > %w", err)
			}
			if code == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No sync code is set")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sync code: %s\n", code)
			return nil
		}),
	})
	codeCommand.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the sync code of this device",
		Args:  cobra.NoArgs,
		RunE: withCodeStore(func(cmd *cobra.Command, args []string, codes *datasync.CodeStore) error {
			if err := codes.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("codeStore.Clear() > %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sync code cleared")
			return nil
		}),
	})
	return codeCommand
}
