// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package cmd implements the bio-annopipe subcommands.
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/grailbio/annopipe/cladecolor"
	"github.com/grailbio/annopipe/genespace"
	"github.com/grailbio/annopipe/isoform"
	"github.com/grailbio/annopipe/teabundance"
	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

// checkArgs returns an error unless argv has exactly n elements.
func checkArgs(name string, argv []string, n int, argsName string) error {
	if len(argv) != n {
		return fmt.Errorf("%s takes %s, but got %v", name, argsName, argv)
	}
	return nil
}

func newCmdCladeColors() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "clade-colors",
		Short:    "Assign a random color to each TE clade of an annotation table",
		ArgsName: "annotation-table output",
		Long: `
The input is a whitespace-delimited table with a header row; column 0 is the
element ID and column 3 its clade. Each distinct clade is given a color from a
shuffled CSS4 palette. The output has one "id color clade" line per data row.`,
	}
	opts := cladecolor.DefaultOpts
	cmd.Flags.Int64Var(&opts.Seed, "seed", 0, "If nonzero, seed for the palette shuffle")
	cmd.Flags.BoolVar(&opts.Stable, "stable", false, "If -seed is zero, derive the seed from the clade list instead of the clock")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := checkArgs(cmd.Name, argv, 2, cmd.ArgsName); err != nil {
			return err
		}
		return cladecolor.Run(context.Background(), argv[0], argv[1], opts)
	})
	return cmd
}

func newCmdTEAbundance() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "te-abundance",
		Short:    "Extract per-family copy numbers from a RepeatMasker summary",
		ArgsName: "summary output.csv",
	}
	opts := teabundance.DefaultOpts
	cmd.Flags.BoolVar(&opts.Lenient, "lenient", false, "Skip malformed data lines with a warning instead of failing")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := checkArgs(cmd.Name, argv, 2, cmd.ArgsName); err != nil {
			return err
		}
		return teabundance.Run(context.Background(), argv[0], argv[1], opts)
	})
	return cmd
}

func newCmdIsoforms() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "isoforms",
		Short:    "List the isoforms of each gene named in FASTA headers",
		ArgsName: "fasta output",
	}
	opts := isoform.DefaultOpts
	cmd.Flags.StringVar(&opts.Prefix, "prefix", opts.Prefix, "Literal prefix of gene IDs")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := checkArgs(cmd.Name, argv, 2, cmd.ArgsName); err != nil {
			return err
		}
		return isoform.Run(context.Background(), argv[0], argv[1], opts)
	})
	return cmd
}

func newCmdLongestContigs() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "longest-contigs",
		Short:    "Write the FASTA index lines of the longest contigs",
		ArgsName: "fasta|fai output.fai",
		Long: `
The input is either an assembly FASTA or its samtools index (a path ending in
.fai). The output lists the -n longest sequences, longest first.`,
	}
	opts := genespace.DefaultOpts
	cmd.Flags.IntVar(&opts.NumContigs, "n", opts.NumContigs, "Number of contigs to keep")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := checkArgs(cmd.Name, argv, 2, cmd.ArgsName); err != nil {
			return err
		}
		return genespace.SelectLongestContigs(context.Background(), argv[0], argv[1], opts)
	})
	return cmd
}

func newCmdFilterGenes() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "filter-genes",
		Short:    "Keep the GFF gene rows that lie on the listed contigs",
		ArgsName: "contigs.fai genes.gff3 output.gff3",
	}
	opts := genespace.DefaultOpts
	cmd.Flags.StringVar(&opts.FeatureType, "feature-type", opts.FeatureType, "GFF feature type to keep")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := checkArgs(cmd.Name, argv, 3, cmd.ArgsName); err != nil {
			return err
		}
		return genespace.FilterGeneFiles(context.Background(), argv[0], argv[1], argv[2], opts)
	})
	return cmd
}

func newCmdGFF2BED() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "gff2bed",
		Short:    "Convert GFF gene rows to a BED file named by gene ID",
		ArgsName: "genes.gff3 output.bed",
	}
	opts := genespace.DefaultOpts
	cmd.Flags.StringVar(&opts.FeatureType, "feature-type", opts.FeatureType, "GFF feature type to convert")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := checkArgs(cmd.Name, argv, 2, cmd.ArgsName); err != nil {
			return err
		}
		return genespace.WriteGeneBED(context.Background(), argv[0], argv[1], opts)
	})
	return cmd
}

func newCmdFilterProteins() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "filter-proteins",
		Short:    "Keep the proteins of the genes listed in a BED file, renamed to the gene ID",
		ArgsName: "genes.bed proteins.fasta output.fasta",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := checkArgs(cmd.Name, argv, 3, cmd.ArgsName); err != nil {
			return err
		}
		return genespace.FilterProteinFiles(context.Background(), argv[0], argv[1], argv[2])
	})
	return cmd
}

func newRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bio-annopipe",
		Short:    "Batch transforms for genome annotation files",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdCladeColors(),
			newCmdTEAbundance(),
			newCmdIsoforms(),
			newCmdLongestContigs(),
			newCmdFilterGenes(),
			newCmdGFF2BED(),
			newCmdFilterProteins(),
		},
	}
}

func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newRoot())
}
