// Command compounddb maintains the local compound database: it builds the
// database from seed name lists via PubChem, inspects stored records, and
// publishes or restores snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"optithor/internal/blob"
	blobfs "optithor/internal/blob/fs"
	blobs3 "optithor/internal/blob/s3"
	"optithor/internal/compounds"
	"optithor/internal/compounds/sqlite"
	"optithor/internal/dbbuild"
	"optithor/internal/pubchem"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath string
	root := &cobra.Command{
		Use:           "compounddb",
		Short:         "Build and inspect the growth-medium compound database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "compound database path (default: user cache dir)")
	root.AddCommand(
		newBuildCmd(&dbPath),
		newListCmd(&dbPath),
		newGetCmd(&dbPath),
		newPublishCmd(&dbPath),
		newRestoreCmd(&dbPath),
	)
	return root
}

func openStore(cmd *cobra.Command, dbPath string) (*sqlite.Store, error) {
	store, err := sqlite.Open(cmd.Context(), dbPath)
	if err != nil {
		return nil, fmt.Errorf("open compound database: %w", err)
	}
	return store, nil
}

func newBuildCmd(dbPath *string) *cobra.Command {
	var (
		seedsPath    string
		rolesPath    string
		attemptsPath string
		concurrency  int
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Resolve seed names against PubChem and store the results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var seeds []string
			if seedsPath != "" {
				f, err := os.Open(seedsPath)
				if err != nil {
					return err
				}
				names, err := dbbuild.SeedsFromYAML(f)
				_ = f.Close()
				if err != nil {
					return err
				}
				seeds = append(seeds, names...)
			}
			if rolesPath != "" {
				f, err := os.Open(rolesPath)
				if err != nil {
					return err
				}
				names, err := dbbuild.SeedsFromRolesJSON(f)
				_ = f.Close()
				if err != nil {
					return err
				}
				seeds = append(seeds, names...)
			}
			seeds = dbbuild.DedupePreserveOrder(seeds)
			if len(seeds) == 0 {
				return fmt.Errorf("no seed names: provide --seeds and/or --roles")
			}

			store, err := openStore(cmd, *dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			pipeline := &dbbuild.Pipeline{
				Store:        store,
				Fetcher:      pubchem.NewClient(),
				Concurrency:  concurrency,
				AttemptsPath: attemptsPath,
				Progress: func(done, total int) {
					if done%25 == 0 || done == total {
						fmt.Fprintf(cmd.OutOrStdout(), "fetched %d/%d\n", done, total)
					}
				},
			}
			summary, err := pipeline.Run(cmd.Context(), seeds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"seeds %d, with hydrate variants %d, fetched %d, stored %d\n",
				summary.Seeds, summary.Extended, summary.Fetched, summary.Stored)
			return nil
		},
	}
	cmd.Flags().StringVar(&seedsPath, "seeds", "", "YAML seed name list")
	cmd.Flags().StringVar(&rolesPath, "roles", "", "biological-roles JSON tree")
	cmd.Flags().StringVar(&attemptsPath, "attempts", "", "attempt cache file (skips known-bad queries on reruns)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 2, "concurrent PubChem requests")
	return cmd
}

func newListCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored compounds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd, *dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, rec := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.3f g/mol\n", rec.CID, rec.Name, rec.Formula, rec.MolarMass)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d compounds\n", len(records))
			return nil
		},
	}
}

func newGetCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get CID",
		Short: "Show one stored compound",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cid, ok := compounds.NormalizeCID(args[0])
			if !ok {
				return fmt.Errorf("invalid CID %q", args[0])
			}
			store, err := openStore(cmd, *dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			rec, found, err := store.Get(cmd.Context(), cid)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("compound %s not in database", cid)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "CID:        %s\n", rec.CID)
			fmt.Fprintf(out, "Name:       %s\n", rec.Name)
			fmt.Fprintf(out, "Formula:    %s\n", rec.Formula)
			fmt.Fprintf(out, "Molar mass: %.3f g/mol\n", rec.MolarMass)
			if rec.AnhydrousFormula != "" && rec.AnhydrousFormula != rec.Formula {
				fmt.Fprintf(out, "Anhydrous:  %s (%.3f g/mol)\n", rec.AnhydrousFormula, rec.AnhydrousMolarMass)
			}
			return nil
		},
	}
}

// snapshotStore selects the blob backend: a local directory by default, or
// the bucket named by the OPTITHOR_SNAPSHOT_S3_* environment when --remote
// is set.
func snapshotStore(cmd *cobra.Command, dir string, remote bool) (blob.Store, error) {
	if remote {
		return blobs3.OpenFromEnv(cmd.Context())
	}
	return blobfs.New(dir)
}

func newPublishCmd(dbPath *string) *cobra.Command {
	var (
		dir    string
		key    string
		remote bool
	)
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write a snapshot of the database to a blob directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd, *dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			dst, err := snapshotStore(cmd, dir, remote)
			if err != nil {
				return err
			}
			info, err := compounds.WriteSnapshot(cmd.Context(), dst, key, records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s (%d bytes, %s records)\n", info.Key, info.Size, info.Metadata["records"])
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./snapshots", "snapshot blob directory")
	cmd.Flags().StringVar(&key, "key", "compounds.json", "snapshot key")
	cmd.Flags().BoolVar(&remote, "remote", false, "publish to the S3 bucket from OPTITHOR_SNAPSHOT_S3_* env")
	return cmd
}

func newRestoreCmd(dbPath *string) *cobra.Command {
	var (
		dir    string
		key    string
		remote bool
	)
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Seed the database from a published snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd, *dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			src, err := snapshotStore(cmd, dir, remote)
			if err != nil {
				return err
			}
			n, err := compounds.SeedStore(cmd.Context(), src, key, store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d compounds\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./snapshots", "snapshot blob directory")
	cmd.Flags().StringVar(&key, "key", "compounds.json", "snapshot key")
	cmd.Flags().BoolVar(&remote, "remote", false, "restore from the S3 bucket from OPTITHOR_SNAPSHOT_S3_* env")
	return cmd
}
