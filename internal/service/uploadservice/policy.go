/*
Copyright 2026 IONOS Cloud.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package uploadservice

import (
	"fmt"
	"maps"
)

// Site identifies the step of the workflow a failure happened in.
type Site string

// all the failure sites.
const (
	SiteNodeDiscovery    = Site("node discovery")
	SiteStorageDiscovery = Site("storage discovery")
	SiteUpload           = Site("upload")
)

// Disposition tells the uploader what a failure at a Site means for the run.
type Disposition string

const (
	// Fatal aborts the whole run.
	Fatal = Disposition("fatal")
	// Isolated records the failure for the current node and continues with the next one.
	Isolated = Disposition("isolated")
)

// Policy maps every Site to a Disposition.
type Policy map[Site]Disposition

// DefaultPolicy isolates upload failures and treats discovery failures as fatal.
func DefaultPolicy() Policy {
	return Policy{
		SiteNodeDiscovery:    Fatal,
		SiteStorageDiscovery: Fatal,
		SiteUpload:           Isolated,
	}
}

// WithIsolatedStorageErrors returns a copy of p in which a failed storage
// listing only fails the affected node.
func (p Policy) WithIsolatedStorageErrors() Policy {
	out := maps.Clone(p)
	if out == nil {
		out = Policy{}
	}
	out[SiteStorageDiscovery] = Isolated
	return out
}

// Disposition returns the disposition for site. Unknown sites are fatal.
func (p Policy) Disposition(site Site) Disposition {
	if d, ok := p[site]; ok {
		return d
	}
	return Fatal
}

// Validate checks that the policy covers every site with a known disposition.
// Node discovery cannot be isolated as there is no node to attribute it to.
func (p Policy) Validate() error {
	for _, site := range []Site{SiteNodeDiscovery, SiteStorageDiscovery, SiteUpload} {
		switch d := p[site]; d {
		case Fatal, Isolated:
		case "":
			return fmt.Errorf("failure policy does not cover %s", site)
		default:
			return fmt.Errorf("unknown disposition %q for %s", d, site)
		}
	}
	if p[SiteNodeDiscovery] != Fatal {
		return fmt.Errorf("%s failures must be %s", SiteNodeDiscovery, Fatal)
	}
	return nil
}
