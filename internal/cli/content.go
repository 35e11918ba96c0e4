package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/folio/internal/service"
)

func RunImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	im := &service.Importer{DB: s.db, Catalog: s.catalog, Log: s.log}
	res, err := im.ImportFile(ctx, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, e := range res.Errors {
		fmt.Fprintf(out, "skipped: %v\n", e)
	}
	fmt.Fprintf(out, "imported %d entries into %d sections (removed %d, skipped %d)\n",
		res.Imported, res.Sections, res.Removed, res.Skipped)
	return nil
}

func RunSections(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	counts, err := s.content().EntryCounts(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, sec := range s.catalog.Sections() {
		flag := ""
		if sec.Sticky {
			flag = "sticky"
		}
		state := fmt.Sprintf("%d entries", counts[sec.ID])
		if counts[sec.ID] == 0 {
			state = "empty (not shown)"
		}
		fmt.Fprintf(out, "%d  %-16s %-7s %s\n", i+1, sec.ID, flag, state)
	}
	return nil
}

func RunReset(cmd *cobra.Command, args []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		return errors.New("reset deletes all content; pass --yes to confirm")
	}
	ctx := cmd.Context()
	s, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	m := &service.MaintenanceService{DB: s.db, Catalog: s.catalog, Log: s.log}
	if err := m.Reset(ctx); err != nil {
		return err
	}
	s.log.Info("reset: content restored to the sample CV")
	fmt.Fprintln(cmd.OutOrStdout(), "content reset to the sample CV")
	return nil
}
