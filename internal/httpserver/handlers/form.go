package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-json"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/games"
	"github.com/naitik09090/backend-games/internal/utils"
)

const defaultMaxUploadBytes = 5 << 20

// Accepted field names, preferred first.
var (
	nameFields  = []string{"gameName", "name"}
	logoFields  = []string{"gameLogo", "logo"}
	urlFields   = []string{"gameUrl", "url"}
	linksFields = []string{"iframs", "embedLinks"}
)

// gameForm is a decoded game payload. Nil fields were not sent.
type gameForm struct {
	Name  *string
	Logo  *domain.Logo
	URL   *string
	Links []string
}

func (f gameForm) create() games.CreateInput {
	in := games.CreateInput{EmbedLinks: f.Links}
	if f.Name != nil {
		in.Name = *f.Name
	}
	if f.Logo != nil {
		in.Logo = *f.Logo
	}
	if f.URL != nil {
		in.URL = *f.URL
	}
	return in
}

func (f gameForm) update() games.UpdateInput {
	return games.UpdateInput{Name: f.Name, Logo: f.Logo, URL: f.URL, EmbedLinks: f.Links}
}

func (f gameForm) catalog() games.CatalogInput {
	c := f.create()
	return games.CatalogInput{Name: c.Name, Logo: c.Logo, URL: c.URL, EmbedLinks: c.EmbedLinks}
}

// gamePayload is the JSON body shape.
type gamePayload struct {
	GameName   *string  `json:"gameName"`
	Name       *string  `json:"name"`
	GameLogo   *string  `json:"gameLogo"`
	Logo       *string  `json:"logo"`
	GameURL    *string  `json:"gameUrl"`
	URL        *string  `json:"url"`
	Iframs     linkList `json:"iframs"`
	EmbedLinks linkList `json:"embedLinks"`
}

// linkList accepts a comma-separated string or an array of strings.
type linkList []string

func (l *linkList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = games.ParseLinks(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return domain.Invalid("iframs", "must be a string or an array of strings")
	}
	*l = games.CleanLinks(arr)
	return nil
}

// parseGameForm decodes a JSON, multipart or urlencoded game payload.
// A multipart file in the logo field becomes an inline data URI.
func parseGameForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (gameForm, error) {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return gameForm{}, bodyError(err)
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()
		return formValues(r)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return gameForm{}, bodyError(err)
		}
		return formValues(r)
	default:
		return jsonValues(r)
	}
}

func jsonValues(r *http.Request) (gameForm, error) {
	var p gamePayload
	if err := decodeJSON(r, &p); err != nil {
		return gameForm{}, err
	}

	f := gameForm{
		Name: first(p.GameName, p.Name),
		URL:  first(p.GameURL, p.URL),
	}
	if s := first(p.GameLogo, p.Logo); s != nil {
		logo := domain.ParseLogo(*s)
		f.Logo = &logo
	}
	f.Links = []string(p.Iframs)
	if f.Links == nil {
		f.Links = []string(p.EmbedLinks)
	}
	return f, nil
}

func formValues(r *http.Request) (gameForm, error) {
	f := gameForm{
		Name: formField(r.PostForm, nameFields),
		URL:  formField(r.PostForm, urlFields),
	}
	if s := formField(r.PostForm, logoFields); s != nil {
		logo := domain.ParseLogo(*s)
		f.Logo = &logo
	}
	for _, key := range linksFields {
		if vs, ok := r.PostForm[key]; ok {
			f.Links = formLinks(vs)
			break
		}
	}

	logo, err := uploadedLogo(r)
	if err != nil {
		return gameForm{}, err
	}
	if logo != nil {
		f.Logo = logo
	}
	return f, nil
}

// uploadedLogo reads the first logo file of a multipart form.
func uploadedLogo(r *http.Request) (*domain.Logo, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	for _, key := range logoFields {
		files := r.MultipartForm.File[key]
		if len(files) == 0 {
			continue
		}
		file, err := files[0].Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer utils.Close(file)

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, bodyError(err)
		}
		if len(data) == 0 {
			return nil, nil
		}
		mt := mimetype.Detect(data)
		if !strings.HasPrefix(mt.String(), "image/") {
			return nil, domain.Invalid(key, "must be an image, got "+mt.String())
		}
		logo := domain.InlineLogo(mt.String(), data)
		return &logo, nil
	}
	return nil, nil
}

// formLinks flattens repeated and comma-separated values. Blank input counts
// as not supplied, since forms always send every field.
func formLinks(vs []string) []string {
	var links []string
	for _, v := range vs {
		links = append(links, games.ParseLinks(v)...)
	}
	if len(links) == 0 {
		return nil
	}
	return links
}

func formField(values url.Values, keys []string) *string {
	for _, key := range keys {
		if vs, ok := values[key]; ok && len(vs) > 0 {
			v := vs[0]
			return &v
		}
	}
	return nil
}

func first(vals ...*string) *string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// decodeJSON decodes the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return domain.Invalid("", fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	}
	return domain.Invalid("", "malformed request body")
}
