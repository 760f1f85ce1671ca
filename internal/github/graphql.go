package github

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const contributionCalendarQuery = `query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

// ContributionDay is one cell of the calendar. Date is YYYY-MM-DD.
type ContributionDay struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
}

// ContributionWeek is one column of the calendar, Sunday first.
type ContributionWeek struct {
	ContributionDays []ContributionDay `json:"contributionDays"`
}

// ContributionCalendar covers GitHub's default window, the trailing year.
type ContributionCalendar struct {
	TotalContributions int                `json:"totalContributions"`
	Weeks              []ContributionWeek `json:"weeks"`
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

type calendarResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection *struct {
				ContributionCalendar ContributionCalendar `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// ContributionCalendar fetches login's contribution calendar through GraphQL.
func (c *Client) ContributionCalendar(ctx context.Context, login string) (*ContributionCalendar, error) {
	if !c.hasToken {
		return nil, ErrTokenRequired
	}

	var resp calendarResponse
	err := c.postJSON(ctx, c.graphqlURL, graphqlRequest{
		Query:     contributionCalendarQuery,
		Variables: map[string]any{"login": login},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("github: contribution calendar for %q: %w", login, err)
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("github: contribution calendar for %q: graphql: %s", login, strings.Join(msgs, "; "))
	}

	user := resp.Data.User
	if user == nil {
		return nil, fmt.Errorf("github: contribution calendar: user %q not found", login)
	}
	if user.ContributionsCollection == nil {
		return nil, errors.New("github: contribution calendar: response has no contributionsCollection")
	}

	cal := user.ContributionsCollection.ContributionCalendar
	return &cal, nil
}
