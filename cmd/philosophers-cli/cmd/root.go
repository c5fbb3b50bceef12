// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/philosophersvm/actions"
	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/client"
	"github.com/ava-labs/philosophersvm/crypto/ed25519"
	"github.com/ava-labs/philosophersvm/node"
	"github.com/ava-labs/philosophersvm/registry"
	"github.com/ava-labs/philosophersvm/utils"
)

const (
	defaultURI     = "http://127.0.0.1:9650" + node.BaseURL
	requestTimeout = 30 * time.Second
)

var (
	ErrNoSigner = errors.New("either --key or --account is required")

	uri        string
	keyHex     string
	keyFile    string
	accountArg string
	timeout    time.Duration

	rootCmd = &cobra.Command{
		Use:          "philosophers-cli",
		Short:        "PhilosophersVM CLI",
		SuggestFor:   []string{"philosophers-cli", "philosopherscli"},
		SilenceUsage: true,
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().StringVar(&uri, "uri", defaultURI, "node API base uri")
	rootCmd.PersistentFlags().StringVar(&keyHex, "key", "", "hex encoded ed25519 private key of the signer")
	rootCmd.PersistentFlags().StringVar(&keyFile, "key-file", "", "file holding the raw ed25519 private key of the signer")
	rootCmd.PersistentFlags().StringVar(&accountArg, "account", "", "named development account used as the signer (e.g. Alice)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", requestTimeout, "how long to wait for inclusion")

	rootCmd.AddCommand(
		keyCmd,
		pingCmd,
		philosophersCmd,
		storefrontCmd,
		tokensCmd,
		scriptCmd,
		watchCmd,
	)
	keyCmd.AddCommand(genKeyCmd, addressKeyCmd)
	philosophersCmd.AddCommand(
		setupCollectionCmd,
		mintPhilosopherCmd,
		transferPhilosopherCmd,
		showPhilosopherCmd,
		collectionCmd,
		supplyCmd,
	)
	storefrontCmd.AddCommand(
		setupStorefrontCmd,
		createListingCmd,
		purchaseListingCmd,
		removeListingCmd,
		listingsCmd,
	)
	tokensCmd.AddCommand(balanceCmd, mintTokensCmd, transferTokensCmd)
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// signer resolves the transaction signer from the persistent flags.
func signer() (*auth.PrivateKey, error) {
	switch {
	case keyHex != "":
		key, err := ed25519.HexToKey(keyHex)
		if err != nil {
			return nil, err
		}
		return auth.NewPrivateKey(key), nil
	case keyFile != "":
		key, err := ed25519.LoadKey(keyFile)
		if err != nil {
			return nil, err
		}
		return auth.NewPrivateKey(key), nil
	case accountArg != "":
		return auth.NamedKey(accountArg), nil
	default:
		return nil, ErrNoSigner
	}
}

func newClient() *client.Client {
	cli := client.New(uri)
	cli.SetWaitTimeout(timeout)
	return cli
}

// printResult reports the outcome of a committed transaction and its
// events.
func printResult(result *chain.Result, err error) error {
	var revert *chain.RevertError
	switch {
	case errors.As(err, &revert):
		utils.Outf("{{red}}reverted:{{/}} %s\n", revert.Reason)
		return err
	case err != nil:
		return err
	}
	utils.Outf("{{green}}success{{/}}\n")
	events, err := result.ParseEvents(registry.Parser)
	if err != nil {
		return err
	}
	for _, event := range events {
		printEvent(event)
	}
	return nil
}

func printEvent(event chain.Event) {
	switch e := event.(type) {
	case *actions.Minted:
		utils.Outf("{{yellow}}minted:{{/}} id=%d kind=%s rarity=%s to=%s\n", e.ID, e.Kind, e.Rarity, e.To)
	case *actions.Transferred:
		utils.Outf("{{yellow}}transferred:{{/}} id=%d from=%s to=%s\n", e.ID, e.From, e.To)
	case *actions.ListingAvailable:
		utils.Outf(
			"{{yellow}}listing available:{{/}} listingResourceID=%d nftID=%d price=%s\n",
			e.ListingResourceID,
			e.NFTID,
			utils.FormatBalance(e.Price),
		)
	case *actions.ListingCompleted:
		utils.Outf(
			"{{yellow}}listing completed:{{/}} listingResourceID=%d nftID=%d buyer=%s price=%s\n",
			e.ListingResourceID,
			e.NFTID,
			e.Buyer,
			utils.FormatBalance(e.Price),
		)
	case *actions.ListingRemoved:
		utils.Outf("{{yellow}}listing removed:{{/}} listingResourceID=%d\n", e.ListingResourceID)
	case *actions.RoyaltyPaid:
		utils.Outf(
			"{{yellow}}royalty paid:{{/}} %s to %s (%s)\n",
			utils.FormatBalance(e.Amount),
			e.Beneficiary,
			e.Description,
		)
	case *actions.TokensMinted:
		utils.Outf("{{yellow}}tokens minted:{{/}} %s to %s\n", utils.FormatBalance(e.Amount), e.To)
	case *actions.TokensTransferred:
		utils.Outf("{{yellow}}tokens transferred:{{/}} %s from %s to %s\n", utils.FormatBalance(e.Amount), e.From, e.To)
	default:
		utils.Outf("{{yellow}}event:{{/}} %T %+v\n", event, event)
	}
}
