package people

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// Fixed ClientError messages for 404 responses.
const (
	msgGetNotFound    = "User with given id not found"
	msgDeleteNotFound = "user with given ID does not exist"
)

// PeopleService handles communication with the people collection.
type PeopleService struct {
	client *Client
}

// DeleteResponse is the confirmation body returned by a delete.
type DeleteResponse map[string]any

// List fetches the collection without paging parameters. If the server
// truncates unpaged lists, only that first chunk is returned; use ListAll
// to walk every page.
func (s *PeopleService) List(ctx context.Context) ([]Person, error) {
	u, err := s.client.collectionURL(nil)
	if err != nil {
		return nil, err
	}

	people, _, err := s.list(ctx, u, false)
	return people, err
}

// ListAll fetches every record. With nil opts it behaves exactly like List.
// Otherwise opts.Limit sets the page size (opts.Page is ignored): the first
// page reports the total count and the remaining pages are fetched in order
// and concatenated.
// The collection is not snapshotted, so concurrent writes on the server
// can cause records to be skipped or repeated.
func (s *PeopleService) ListAll(ctx context.Context, opts *ListOptions) ([]Person, error) {
	if opts == nil {
		return s.List(ctx)
	}
	if opts.Limit <= 0 {
		return nil, invalidArgument("limit has to be positive")
	}

	first, err := s.ListPage(ctx, &ListOptions{Limit: opts.Limit})
	if err != nil {
		return nil, err
	}

	people := first.Records
	for page := 2; page <= first.Pages(); page++ {
		next, err := s.ListPage(ctx, &ListOptions{Limit: opts.Limit, Page: page})
		if err != nil {
			return nil, err
		}
		people = append(people, next.Records...)
	}

	return people, nil
}

// ListPage fetches a single page of the collection.
func (s *PeopleService) ListPage(ctx context.Context, opts *ListOptions) (*PersonPage, error) {
	if opts == nil {
		return nil, invalidArgument("list options are required")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	u, err := s.client.collectionURL(nil)
	if err != nil {
		return nil, err
	}
	opts.encode(u)

	records, header, err := s.list(ctx, u, false)
	if err != nil {
		return nil, err
	}

	total, err := parseTotalCount(header.Get(totalCountHeader))
	if err != nil {
		return nil, err
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}

	return &PersonPage{
		Records:    records,
		Page:       page,
		Limit:      opts.Limit,
		TotalCount: total,
		service:    s,
	}, nil
}

// Add creates a record from its five fields.
func (s *PeopleService) Add(ctx context.Context, firstName, lastName, email, phone, ipAddress string) (*Person, error) {
	return s.Create(ctx, Person{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		IPAddress: ipAddress,
	})
}

// Create posts p and returns the record as stored by the server,
// including its assigned ID. Only 201 Created counts as success.
func (s *PeopleService) Create(ctx context.Context, p Person) (*Person, error) {
	return s.create(ctx, p)
}

// create posts body as JSON. body may be a Person or a raw mapping.
func (s *PeopleService) create(ctx context.Context, body any) (*Person, error) {
	req, err := s.client.newRequest(ctx, http.MethodPost, s.client.baseURL, body, true)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return nil, newClientError(resp, createErrorKey)
	}

	var created Person
	if err := decodeJSON(resp, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// GetByID fetches a single record.
func (s *PeopleService) GetByID(ctx context.Context, id string) (*Person, error) {
	if id == "" {
		return nil, invalidArgument("id must not be empty")
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, s.client.recordURL(id), nil, false)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, notFoundError(resp, msgGetNotFound)
	}
	if !success(resp.StatusCode) {
		return nil, newClientError(resp, recordErrorKey)
	}

	var p Person
	if err := decodeJSON(resp, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// Query returns the records whose fields equal every value in criteria.
// Unknown fields are rejected before anything is sent.
func (s *PeopleService) Query(ctx context.Context, criteria Criteria) ([]Person, error) {
	if err := criteria.validate(); err != nil {
		return nil, err
	}

	u, err := s.client.collectionURL(criteria.values())
	if err != nil {
		return nil, err
	}

	people, _, err := s.list(ctx, u, false)
	return people, err
}

// ByPartialIP returns the records whose IP address starts with prefix.
func (s *PeopleService) ByPartialIP(ctx context.Context, prefix string) ([]Person, error) {
	u, err := s.client.collectionURL(url.Values{"ip_address_like": {"^" + prefix}})
	if err != nil {
		return nil, err
	}

	people, _, err := s.list(ctx, u, false)
	return people, err
}

// Delete removes a single record and returns the server's confirmation.
func (s *PeopleService) Delete(ctx context.Context, id string) (DeleteResponse, error) {
	if id == "" {
		return nil, invalidArgument("id must not be empty")
	}

	resp, err := s.delete(ctx, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, notFoundError(resp, msgDeleteNotFound)
	}
	if !success(resp.StatusCode) {
		return nil, newClientError(resp, recordErrorKey)
	}

	var confirmation DeleteResponse
	if err := decodeJSON(resp, &confirmation); err != nil {
		return nil, err
	}

	return confirmation, nil
}

// DeleteByName deletes every record whose first name equals firstName.
// Deletions run in lookup order and are not rolled back. A deletion counts
// only if the server answers 200 OK; other outcomes are tallied as failures
// and not reported individually. An error is returned only if the lookup
// fails or ctx is done.
func (s *PeopleService) DeleteByName(ctx context.Context, firstName string) (*DeleteSummary, error) {
	u, err := s.client.collectionURL(Criteria{FieldFirstName: firstName}.values())
	if err != nil {
		return nil, err
	}

	matches, _, err := s.list(ctx, u, true)
	if err != nil {
		return nil, err
	}

	summary := &DeleteSummary{Total: len(matches)}
	for _, p := range matches {
		// Without an id the DELETE would target the collection itself.
		if p.ID == "" {
			continue
		}
		resp, err := s.delete(ctx, p.ID.String())
		if err != nil {
			if ctx.Err() != nil {
				return summary, err
			}
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			summary.Deleted++
		}
	}

	return summary, nil
}

// Import reads a JSON array of records from r and creates them one by one,
// in order. Each record is posted exactly as read, keys the client does not
// know included. The first rejected record aborts the import with its
// ClientError; records created before it stay on the server but are not
// returned.
func (s *PeopleService) Import(ctx context.Context, r io.Reader) ([]Person, error) {
	var records []map[string]any
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode import input: %w", err)
	}

	created := make([]Person, 0, len(records))
	for _, rec := range records {
		c, err := s.create(ctx, rec)
		if err != nil {
			return nil, err
		}
		created = append(created, *c)
	}

	return created, nil
}

// ImportFile is Import reading from the file at path.
func (s *PeopleService) ImportFile(ctx context.Context, path string) ([]Person, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return s.Import(ctx, f)
}

// list GETs u and decodes a JSON array of records.
func (s *PeopleService) list(ctx context.Context, u *url.URL, authenticated bool) ([]Person, http.Header, error) {
	req, err := s.client.newRequest(ctx, http.MethodGet, u.String(), nil, authenticated)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		return nil, nil, newClientError(resp, recordErrorKey)
	}

	people := []Person{}
	if err := decodeJSON(resp, &people); err != nil {
		return nil, nil, err
	}

	return people, resp.Header, nil
}

// delete sends an authenticated DELETE for id. The caller owns the body.
func (s *PeopleService) delete(ctx context.Context, id string) (*http.Response, error) {
	req, err := s.client.newRequest(ctx, http.MethodDelete, s.client.recordURL(id), nil, true)
	if err != nil {
		return nil, err
	}
	return s.client.Do(ctx, req)
}

func success(code int) bool {
	return code >= 200 && code < 300
}
