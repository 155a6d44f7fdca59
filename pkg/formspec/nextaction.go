package formspec

import (
	"strings"
)

// Default wire paths used when a redirect_to_url entry omits them.
const (
	DefaultRedirectURLPath       = "next_action[redirect_to_url][url]"
	DefaultRedirectReturnURLPath = "next_action[redirect_to_url][return_url]"
)

// Next-action discriminators.
const (
	NextActionRedirectToURL = "redirect_to_url"
	NextActionFinished      = "finished"
	NextActionCanceled      = "canceled"
)

// ConfirmResponseStatusSpec describes how to handle an intent status returned
// by the confirm call: RedirectToURL, ConfirmFinished or UnknownConfirmStatus.
type ConfirmResponseStatusSpec interface {
	Type() string
	encode() Node
}

// RedirectToURL sends the customer to the URL found at URLPath in the
// confirm response.
type RedirectToURL struct {
	URLPath       string
	ReturnURLPath string
}

// ConfirmFinished means no further action is required.
type ConfirmFinished struct{}

// UnknownConfirmStatus preserves an unrecognised discriminator.
type UnknownConfirmStatus struct {
	Tag string
}

func (RedirectToURL) Type() string          { return NextActionRedirectToURL }
func (ConfirmFinished) Type() string        { return NextActionFinished }
func (s UnknownConfirmStatus) Type() string { return s.Tag }

func (r RedirectToURL) encode() Node {
	return Node{"type": NextActionRedirectToURL, "url_path": r.URLPath, "return_url_path": r.ReturnURLPath}
}
func (ConfirmFinished) encode() Node        { return Node{"type": NextActionFinished} }
func (s UnknownConfirmStatus) encode() Node { return Node{"type": s.Tag} }

// Resolve follows URLPath and ReturnURLPath into a decoded API response. ok
// is false when the redirect URL is absent or not a string; the return URL
// is optional.
func (r RedirectToURL) Resolve(response map[string]any) (redirectURL, returnURL string, ok bool) {
	redirectURL, ok = lookupWirePath(response, r.URLPath)
	if !ok || redirectURL == "" {
		return "", "", false
	}
	returnURL, _ = lookupWirePath(response, r.ReturnURLPath)
	return redirectURL, returnURL, true
}

// PostConfirmHandlingStatusSpec describes how to treat an intent status
// observed after the next action completed.
type PostConfirmHandlingStatusSpec interface {
	Type() string
	encode() Node
}

type (
	PostConfirmFinished      struct{}
	PostConfirmCanceled      struct{}
	UnknownPostConfirmStatus struct{ Tag string }
)

func (PostConfirmFinished) Type() string        { return NextActionFinished }
func (PostConfirmCanceled) Type() string        { return NextActionCanceled }
func (s UnknownPostConfirmStatus) Type() string { return s.Tag }

func (PostConfirmFinished) encode() Node        { return Node{"type": NextActionFinished} }
func (PostConfirmCanceled) encode() Node        { return Node{"type": NextActionCanceled} }
func (s UnknownPostConfirmStatus) encode() Node { return Node{"type": s.Tag} }

// NextActionSpec holds the next-action handling of one payment method, keyed
// by intent status (for example "requires_action").
type NextActionSpec struct {
	ConfirmResponseStatusSpecs     map[string]ConfirmResponseStatusSpec
	PostConfirmHandlingStatusSpecs map[string]PostConfirmHandlingStatusSpec
}

// Supported reports whether every entry decoded into a known variant.
func (s *NextActionSpec) Supported() bool {
	if s == nil {
		return true
	}
	for _, spec := range s.ConfirmResponseStatusSpecs {
		if _, unknown := spec.(UnknownConfirmStatus); unknown {
			return false
		}
	}
	for _, spec := range s.PostConfirmHandlingStatusSpecs {
		if _, unknown := spec.(UnknownPostConfirmStatus); unknown {
			return false
		}
	}
	return true
}

// DecodeConfirmResponseStatus decodes a single confirm-response entry.
func DecodeConfirmResponseStatus(node Node) (ConfirmResponseStatusSpec, error) {
	tag, err := node.tag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case NextActionRedirectToURL:
		urlPath, err := node.optionalString("url_path")
		if err != nil {
			return nil, withTag(err, tag)
		}
		returnPath, err := node.optionalString("return_url_path")
		if err != nil {
			return nil, withTag(err, tag)
		}
		if urlPath == "" {
			urlPath = DefaultRedirectURLPath
		}
		if returnPath == "" {
			returnPath = DefaultRedirectReturnURLPath
		}
		return RedirectToURL{URLPath: urlPath, ReturnURLPath: returnPath}, nil
	case NextActionFinished:
		return ConfirmFinished{}, nil
	default:
		return UnknownConfirmStatus{Tag: tag}, nil
	}
}

// DecodePostConfirmHandlingStatus decodes a single post-confirm entry.
func DecodePostConfirmHandlingStatus(node Node) (PostConfirmHandlingStatusSpec, error) {
	tag, err := node.tag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case NextActionFinished:
		return PostConfirmFinished{}, nil
	case NextActionCanceled:
		return PostConfirmCanceled{}, nil
	default:
		return UnknownPostConfirmStatus{Tag: tag}, nil
	}
}

// DecodeNextActionSpec decodes a next_action_spec object.
// confirm_response_status_specs is required.
func DecodeNextActionSpec(node Node) (*NextActionSpec, error) {
	if !node.has("confirm_response_status_specs") {
		return nil, malformed("", "confirm_response_status_specs", "required")
	}
	confirm, err := node.optionalObject("confirm_response_status_specs")
	if err != nil {
		return nil, err
	}

	spec := &NextActionSpec{
		ConfirmResponseStatusSpecs: make(map[string]ConfirmResponseStatusSpec, len(confirm)),
	}
	for status, raw := range confirm {
		entry, ok := AsNode(raw)
		if !ok {
			return nil, malformed("", "confirm_response_status_specs", "status %q: expected object, got %T", status, raw)
		}
		decoded, err := DecodeConfirmResponseStatus(entry)
		if err != nil {
			return nil, err
		}
		spec.ConfirmResponseStatusSpecs[status] = decoded
	}

	post, err := node.optionalObject("post_confirm_handling_pi_status_specs")
	if err != nil {
		return nil, err
	}
	if post != nil {
		spec.PostConfirmHandlingStatusSpecs = make(map[string]PostConfirmHandlingStatusSpec, len(post))
		for status, raw := range post {
			entry, ok := AsNode(raw)
			if !ok {
				return nil, malformed("", "post_confirm_handling_pi_status_specs", "status %q: expected object, got %T", status, raw)
			}
			decoded, err := DecodePostConfirmHandlingStatus(entry)
			if err != nil {
				return nil, err
			}
			spec.PostConfirmHandlingStatusSpecs[status] = decoded
		}
	}
	return spec, nil
}

// EncodeNextActionSpec returns the keyed representation of spec.
func EncodeNextActionSpec(spec *NextActionSpec) Node {
	if spec == nil {
		return nil
	}
	confirm := make(map[string]any, len(spec.ConfirmResponseStatusSpecs))
	for status, entry := range spec.ConfirmResponseStatusSpecs {
		confirm[status] = map[string]any(entry.encode())
	}
	node := Node{"confirm_response_status_specs": confirm}
	if spec.PostConfirmHandlingStatusSpecs != nil {
		post := make(map[string]any, len(spec.PostConfirmHandlingStatusSpecs))
		for status, entry := range spec.PostConfirmHandlingStatusSpecs {
			post[status] = map[string]any(entry.encode())
		}
		node["post_confirm_handling_pi_status_specs"] = post
	}
	return node
}

// lookupWirePath resolves a bracket-style wire key such as
// "next_action[redirect_to_url][url]" against nested maps.
func lookupWirePath(root map[string]any, path string) (string, bool) {
	segments := WirePathSegments(path)
	if root == nil || len(segments) == 0 {
		return "", false
	}
	var current any = root
	for _, segment := range segments {
		node, ok := AsNode(current)
		if !ok {
			return "", false
		}
		current, ok = node[segment]
		if !ok {
			return "", false
		}
	}
	value, ok := current.(string)
	return value, ok
}

// WirePathSegments splits a bracket-style wire key into its segments.
func WirePathSegments(path string) []string {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '[' || r == ']'
	})
	out := parts[:0]
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
