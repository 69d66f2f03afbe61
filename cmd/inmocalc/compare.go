package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/inmocalc/internal/compare"
	"github.com/rgehrsitz/inmocalc/internal/domain"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare mortgage offers for the same property",
		Long: `Compare a base mortgage offer against alternatives on the same price and
down payment. Offers are written rate:years, optionally followed by an opening
fee and a name: rate:years[:fee[:name]].

Examples:
  inmocalc compare --price 250000 --down 50000 --base 3.5:25 --alt 3.0:25:2000 --alt 3.5:30
  inmocalc compare --price 250000 --down 50000 --base 3.5:25:0:Bank-A --alt 3.1:25:1500:Bank-B --format csv
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := engineFor(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			price, err := decimalFlag(cmd, "price")
			if err != nil {
				return err
			}
			down, err := decimalFlag(cmd, "down")
			if err != nil {
				return err
			}

			baseSpec, _ := cmd.Flags().GetString("base")
			base, err := parseOffer(baseSpec, price, down)
			if err != nil {
				return err
			}
			altSpecs, _ := cmd.Flags().GetStringArray("alt")
			if len(altSpecs) == 0 {
				return fmt.Errorf("--alt is required at least once")
			}
			alts := make([]compare.Offer, 0, len(altSpecs))
			for _, spec := range altSpecs {
				o, err := parseOffer(spec, price, down)
				if err != nil {
					return err
				}
				alts = append(alts, o)
			}

			compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), base, alts)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch format {
			case "table", "console", "":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{}).Format(compSet)
			default:
				return fmt.Errorf("unsupported format %q (available: table, compact, csv, json)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().String("price", "", "Property price (EUR)")
	cmd.Flags().String("down", "0", "Down payment (EUR)")
	cmd.Flags().String("base", "", "Base offer rate:years[:fee[:name]]")
	cmd.Flags().StringArray("alt", nil, "Alternative offer rate:years[:fee[:name]] (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("base")
	return cmd
}

// parseOffer reads rate:years[:fee[:name]]. The name defaults to
// "rate% / years y".
func parseOffer(spec string, price, down decimal.Decimal) (compare.Offer, error) {
	parts := strings.SplitN(strings.TrimSpace(spec), ":", 4)
	if len(parts) < 2 {
		return compare.Offer{}, domain.NewInvalidInput("offer", spec, "expected rate:years[:fee[:name]]")
	}
	rate, err := decimal.NewFromString(parts[0])
	if err != nil {
		return compare.Offer{}, domain.NewInvalidInput("offer", spec, "rate is not a number")
	}
	years, err := strconv.Atoi(parts[1])
	if err != nil {
		return compare.Offer{}, domain.NewInvalidInput("offer", spec, "years is not a whole number")
	}
	fee := decimal.Zero
	if len(parts) > 2 && parts[2] != "" {
		if fee, err = decimal.NewFromString(parts[2]); err != nil {
			return compare.Offer{}, domain.NewInvalidInput("offer", spec, "fee is not a number")
		}
	}
	name := fmt.Sprintf("%s%% / %dy", rate.String(), years)
	if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
		name = strings.TrimSpace(parts[3])
	}

	return compare.Offer{
		Name: name,
		Params: domain.MortgageParams{
			PropertyPrice:             price,
			DownPayment:               down,
			AnnualInterestRatePercent: rate,
			TermYears:                 years,
		},
		OpeningFee: fee,
	}, nil
}
