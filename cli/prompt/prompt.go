// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/philosophersvm/actions"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/storage"
	"github.com/ava-labs/philosophersvm/utils"
)

var (
	ErrInputEmpty          = errors.New("input is empty")
	ErrInputTooLarge       = errors.New("input is too large")
	ErrInvalidChoice       = errors.New("invalid choice")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

func Address(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := codec.ParseAddress(strings.TrimSpace(input))
			return err
		},
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ParseAddress(strings.TrimSpace(recipient))
}

func String(label string, minLen int, maxLen int) (string, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) < minLen {
				return ErrInputEmpty
			}
			if len(input) > maxLen {
				return ErrInputTooLarge
			}
			return nil
		},
	}
	text, err := promptText.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Amount reads a decimal token amount no larger than [balance].
func Amount(label string, balance uint64) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			amount, err := utils.ParseBalance(strings.TrimSpace(input))
			if err != nil {
				return err
			}
			if amount > balance {
				return ErrInsufficientBalance
			}
			return nil
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return utils.ParseBalance(strings.TrimSpace(rawAmount))
}

// Price reads a decimal listing price such as "1.11".
func Price(label string) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := actions.ParsePrice(strings.TrimSpace(input))
			return err
		},
	}
	rawPrice, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return actions.ParsePrice(strings.TrimSpace(rawPrice))
}

func Uint64(label string) (uint64, error) {
	stringToUint := func(input string) (uint64, error) {
		input = strings.TrimSpace(input)
		if len(input) == 0 {
			return 0, ErrInputEmpty
		}
		return strconv.ParseUint(input, 10, 64)
	}
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := stringToUint(input)
			return err
		},
	}
	rawValue, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return stringToUint(rawValue)
}

func Kind(label string) (storage.Kind, error) {
	kinds := []storage.Kind{storage.Socrates, storage.Spinoza, storage.Nietzsche}
	index, _, err := (&promptui.Select{Label: label, Items: kinds}).Run()
	if err != nil {
		return 0, err
	}
	return kinds[index], nil
}

func Rarity(label string) (storage.Rarity, error) {
	rarities := []storage.Rarity{storage.Common, storage.Rare, storage.Epic}
	index, _, err := (&promptui.Select{Label: label, Items: rarities}).Run()
	if err != nil {
		return 0, err
	}
	return rarities[index], nil
}

func Continue() (bool, error) {
	cont, err := Bool("continue")
	if err != nil {
		return false, err
	}
	if !cont {
		utils.Outf("{{red}}exiting...{{/}}\n")
	}
	return cont, nil
}

func Bool(label string) (bool, error) {
	promptText := promptui.Prompt{
		Label: label + " (y/n)",
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			lower := strings.ToLower(input)
			if lower == "y" || lower == "n" {
				return nil
			}
			return ErrInvalidChoice
		},
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	return strings.ToLower(rawContinue) == "y", nil
}
