package repository

import (
	"context"
	"net/http"

	appErrors "github.com/noah-isme/greatday-recap-api/pkg/errors"
)

// pagingSafetyLimit stops a paging loop that would otherwise run away
// on a bogus totalPage answer.
const pagingSafetyLimit = 500

// fetchAllPages walks a paged POST endpoint, merging every page's items.
// The page loop is driven by the totalPage value of the first response.
func fetchAllPages(ctx context.Context, client *GreatDayClient, path string, bodyBase map[string]interface{}) ([]map[string]interface{}, error) {
	var all []map[string]interface{}
	page := 1
	totalPage := 0

	for {
		if page > pagingSafetyLimit {
			return nil, appErrors.Clone(appErrors.ErrUpstream, "paging safety break triggered: page > 500")
		}

		body := make(map[string]interface{}, len(bodyBase)+1)
		for k, v := range bodyBase {
			body[k] = v
		}
		body["page"] = page

		payload, err := client.Request(ctx, http.MethodPost, path, nil, body)
		if err != nil {
			return nil, err
		}

		items, err := extractItems(payload)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if totalPage == 0 {
			totalPage, err = totalPages(payload)
			if err != nil {
				return nil, err
			}
		}

		page++
		if page > totalPage {
			break
		}
	}

	return all, nil
}
