// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/philosophersvm/cli/prompt"
	"github.com/ava-labs/philosophersvm/client"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/utils"
)

var storefrontCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Buy and sell philosophers",
}

var setupStorefrontCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create a storefront (and a collection if missing) for the signer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := signer()
		if err != nil {
			return err
		}
		return printResult(newClient().SetupStorefrontOnAccount(cmd.Context(), key))
	},
}

var createListingCmd = &cobra.Command{
	Use:   "list",
	Short: "Offer a philosopher for sale",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := signer()
		if err != nil {
			return err
		}
		id, err := prompt.Uint64("philosopher id")
		if err != nil {
			return err
		}
		price, err := prompt.Price("price")
		if err != nil {
			return err
		}
		result, err := newClient().CreateListing(cmd.Context(), key, id, price)
		if err := printResult(result, err); err != nil {
			return err
		}
		listingID, err := client.ListingResourceID(result)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}listingResourceID:{{/}} %d\n", listingID)
		return nil
	},
}

var purchaseListingCmd = &cobra.Command{
	Use:   "purchase",
	Short: "Buy a listed philosopher",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := signer()
		if err != nil {
			return err
		}
		seller, err := prompt.Address("seller")
		if err != nil {
			return err
		}
		listingID, err := prompt.Uint64("listing resource id")
		if err != nil {
			return err
		}
		cli := newClient()
		listing, err := cli.GetListing(cmd.Context(), seller, listingID)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{yellow}}nftID:{{/}} %d {{yellow}}price:{{/}} %s\n",
			listing.ItemID,
			utils.FormatBalance(listing.Price),
		)
		cont, err := prompt.Continue()
		if err != nil || !cont {
			return err
		}
		return printResult(cli.PurchaseListing(cmd.Context(), key, listingID, seller))
	},
}

var removeListingCmd = &cobra.Command{
	Use:   "unlist",
	Short: "Cancel one of the signer's listings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := signer()
		if err != nil {
			return err
		}
		listingID, err := prompt.Uint64("listing resource id")
		if err != nil {
			return err
		}
		return printResult(newClient().RemoveListing(cmd.Context(), key, listingID))
	},
}

var listingsCmd = &cobra.Command{
	Use:   "listings <seller>",
	Short: "Show the active listings of seller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seller, err := codec.ParseAddress(args[0])
		if err != nil {
			return err
		}
		cli := newClient()
		ids, err := cli.GetListingIDs(cmd.Context(), seller)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}listings:{{/}} %d\n", len(ids))
		for _, id := range ids {
			listing, err := cli.GetListing(cmd.Context(), seller, id)
			if err != nil {
				return err
			}
			utils.Outf(
				"  {{cyan}}listingResourceID:{{/}} %d {{cyan}}nftID:{{/}} %d {{cyan}}price:{{/}} %s\n",
				listing.ResourceID,
				listing.ItemID,
				utils.FormatBalance(listing.Price),
			)
		}
		return nil
	},
}
