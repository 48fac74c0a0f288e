package dialogue

import (
	"context"
	"errors"
	"sort"
	"strings"

	"agendador/services/directory"
)

// GuestResolver turns raw guest tokens (names or emails) into addressable
// email addresses by consulting the contact directory. Resolution never
// writes to the directory.
type GuestResolver struct {
	Directory directory.DirectoryService
}

// Resolve processes tokens independently. Tokens shaped like an email pass
// through untouched; names are looked up case-insensitively. The resolved
// result is a sorted, deduplicated set; unresolved tokens keep input order.
func (r *GuestResolver) Resolve(ctx context.Context, tokens []string) (resolved []string, unresolved []string, err error) {
	seen := make(map[string]struct{})

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if strings.Contains(token, "@") {
			if _, ok := seen[token]; !ok {
				seen[token] = struct{}{}
				resolved = append(resolved, token)
			}
			continue
		}

		contact, lookupErr := r.Directory.Lookup(ctx, token)
		if errors.Is(lookupErr, directory.ErrContactNotFound) {
			unresolved = append(unresolved, token)
			continue
		}
		if lookupErr != nil {
			return nil, nil, lookupErr
		}
		if _, ok := seen[contact.Email]; !ok {
			seen[contact.Email] = struct{}{}
			resolved = append(resolved, contact.Email)
		}
	}

	sort.Strings(resolved)
	return resolved, unresolved, nil
}
