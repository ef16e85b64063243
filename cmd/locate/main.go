// Command locate runs one LifeGroup search from the terminal and prints the closest meetings.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bwise1/lifegroup_locator/config"
	deps "github.com/bwise1/lifegroup_locator/internal/debs"
	"github.com/bwise1/lifegroup_locator/internal/locator"
	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/pkg/errors"
)

const defaultAudience = "Geral"

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var (
		q                         model.UserQuery
		audiences, days, modality listFlag
	)
	flag.StringVar(&q.DisplayName, "name", "", "your name")
	flag.StringVar(&q.ContactNumber, "phone", "", "your WhatsApp number")
	flag.StringVar(&q.Address, "address", "", "your address, e.g. \"Rua Vergueiro, 100, Vila Mariana\"")
	flag.Var(&audiences, "audience", "audience type to include (repeatable)")
	flag.Var(&days, "day", "day of week to include (repeatable)")
	flag.Var(&modality, "modality", "modality to include (repeatable)")
	flag.Parse()

	q.AudienceTypes, q.Days, q.Modalities = audiences, days, modality

	cfg := config.New()
	d, err := deps.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("[Locate]: %v", err)
	}

	result, err := d.Locator.Search(context.Background(), q)
	if err != nil {
		fmt.Fprintln(os.Stderr, failureText(err))
		os.Exit(1)
	}
	printResult(os.Stdout, result)
}

func failureText(err error) string {
	switch {
	case errors.Is(err, locator.ErrValidation):
		return "Preencha nome, WhatsApp e endereço."
	case errors.Is(err, locator.ErrDataUnavailable):
		return "Não foi possível carregar os LifeGroups agora. Tente novamente mais tarde."
	case errors.Is(err, locator.ErrAddressNotFound):
		return "Endereço não encontrado. Tente incluir o bairro ou a cidade."
	default:
		return err.Error()
	}
}

func printResult(w io.Writer, result model.SearchResult) {
	if len(result.Best)+len(result.Online) == 0 {
		fmt.Fprintln(w, "Nenhum LifeGroup encontrado com esses filtros.")
		return
	}

	if len(result.Best) > 0 {
		fmt.Fprintln(w, "LifeGroups mais próximos:")
	}
	for _, m := range result.Best {
		printMeeting(w, m)
	}
	if len(result.More) > 0 {
		fmt.Fprintln(w, "Outras opções:")
		for _, m := range result.More {
			printMeeting(w, m)
		}
	}
	if len(result.Online) > 0 {
		fmt.Fprintln(w, "LifeGroups online:")
		for _, m := range result.Online {
			printMeeting(w, m)
		}
	}
}

func printMeeting(w io.Writer, m model.RankedMeeting) {
	audience := m.Meeting.AudienceType
	if audience == "" {
		audience = defaultAudience
	}

	fmt.Fprintf(w, "\n%s (%s)\n", m.Meeting.Name, audience)
	fmt.Fprintf(w, "  Endereço: %s\n", m.Meeting.Address)
	fmt.Fprintf(w, "  Quando: %s às %s\n", m.Meeting.DayOfWeek, m.Meeting.StartTime)
	fmt.Fprintf(w, "  Líderes: %s\n", m.Meeting.LeaderNames)
	if m.DistanceKm != nil {
		fmt.Fprintf(w, "  Distância: %.2f km\n", *m.DistanceKm)
	}
	if m.ContactLink != nil {
		fmt.Fprintf(w, "  WhatsApp: %s\n", *m.ContactLink)
	} else {
		fmt.Fprintln(w, "  Sem telefone cadastrado.")
	}
	if m.DirectionsLink != "" {
		fmt.Fprintf(w, "  Como chegar: %s\n", m.DirectionsLink)
	}
}
