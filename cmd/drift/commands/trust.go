package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.trai.ch/drift/internal/core/domain"
)

func (c *CLI) newTrustCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trust",
		Short: "Inspect the web-of-trust graph for the configured root",
	}
	cmd.AddCommand(c.newTrustScoreCmd())
	cmd.AddCommand(c.newTrustListCmd())
	cmd.AddCommand(c.newTrustMutualCmd())
	return cmd
}

func (c *CLI) newTrustScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <pubkey>",
		Short: "Show trust distance and score for one identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := c.resolve(cmd.Context())
			if err != nil {
				return err
			}
			svc := components.Service

			refresh, _ := cmd.Flags().GetBool("refresh")
			if refresh {
				if _, err := svc.RefreshRoot(cmd.Context()); err != nil {
					return err
				}
			}

			id := domain.Identity(args[0])
			node, ok := svc.Score(cmd.Context(), id)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: unreachable within depth bound\n", id.Short())
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pubkey:    %s\n", node.Pubkey)
			fmt.Fprintf(cmd.OutOrStdout(), "distance:  %d\n", node.Distance)
			fmt.Fprintf(cmd.OutOrStdout(), "score:     %g\n", node.Score)
			fmt.Fprintf(cmd.OutOrStdout(), "trusted:   %t\n", svc.IsTrusted(cmd.Context(), id))
			for follower := range node.FollowedBy {
				fmt.Fprintf(cmd.OutOrStdout(), "followed by %s\n", follower.Short())
			}
			return nil
		},
	}
	cmd.Flags().Bool("refresh", false, "Re-check the root's own follow list before querying")
	return cmd
}

func (c *CLI) newTrustListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every identity reachable from the root, nearest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			components, err := c.resolve(cmd.Context())
			if err != nil {
				return err
			}

			maxDistance, _ := cmd.Flags().GetInt("max-distance")
			graph, ok := components.Service.Graph(cmd.Context())
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no root identity configured")
				return nil
			}

			var nodes []*domain.TrustNode
			for n := range graph.Nodes() {
				if maxDistance < 0 || n.Distance <= maxDistance {
					nodes = append(nodes, n)
				}
			}
			sort.Slice(nodes, func(i, j int) bool {
				if nodes[i].Distance != nodes[j].Distance {
					return nodes[i].Distance < nodes[j].Distance
				}
				return nodes[i].Pubkey < nodes[j].Pubkey
			})

			for _, n := range nodes {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%.4f\t%s\n", n.Distance, n.Score, n.Pubkey)
			}

			stats := components.Service.CacheStats()
			components.Logger.Debug("cache stats",
				"contact_lists", stats.ContactListEntries, "graphs", stats.GraphEntries)
			return nil
		},
	}
	cmd.Flags().Int("max-distance", -1, "Only list identities within this distance")
	return cmd
}

func (c *CLI) newTrustMutualCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mutual <pubkey-a> [pubkey-b]",
		Short: "Check mutual follows; with one argument, against the root",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := c.resolve(cmd.Context())
			if err != nil {
				return err
			}
			svc := components.Service

			if len(args) == 1 {
				mutuals, err := svc.MutualFollows(cmd.Context(), domain.Identity(args[0]))
				if err != nil {
					return err
				}
				for _, id := range mutuals {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}

			mutual, err := svc.AreMutualFollows(cmd.Context(), domain.Identity(args[0]), domain.Identity(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%t\n", mutual)
			return nil
		},
	}
}
