package latex

import (
	"encoding/json"
	"sort"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A RenderOpt sets options on a single render request
type RenderOpt func(*RenderOpts) error

// RenderOpts is the set of options for a render request
type RenderOpts struct {
	images map[string]Image
}

// Image is a remote image the server fetches before compiling, referenced
// from the document by its filename
type Image struct {
	URL string `json:"url"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// ApplyRenderOpts returns a structure of options
func ApplyRenderOpts(opts ...RenderOpt) (*RenderOpts, error) {
	o := new(RenderOpts)
	o.images = make(map[string]Image)
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (o RenderOpts) MarshalJSON() ([]byte, error) {
	var j struct {
		Images map[string]Image `json:"images,omitempty"`
	}
	j.Images = o.images
	return json.Marshal(j)
}

func (o RenderOpts) String() string {
	data, err := json.Marshal(o)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - PROPERTIES

// Images returns the attached images keyed by filename
func (o *RenderOpts) Images() map[string]Image {
	return o.images
}

// ImageNames returns the attached image filenames in sorted order
func (o *RenderOpts) ImageNames() []string {
	result := make([]string, 0, len(o.images))
	for name := range o.images {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - SET OPTIONS

// WithImage attaches an image which the server downloads from url and
// stores as filename next to the document
func WithImage(filename, url string) RenderOpt {
	return func(o *RenderOpts) error {
		if filename == "" {
			return ErrClient.With("image filename is required")
		}
		if url == "" {
			return ErrClient.Withf("image %q: url is required", filename)
		}
		if _, exists := o.images[filename]; exists {
			return ErrClient.Withf("image %q already attached", filename)
		}
		o.images[filename] = Image{URL: url}
		return nil
	}
}
