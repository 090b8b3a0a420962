// Package config loads route and subnet label files for the lookup tool.
//
// A file looks like:
//
//	routes:
//	  - prefix: 10.10.0.0/16
//	    nexthop: 192.168.0.1
//	  - prefix: 0.0.0.0/0
//	    nexthop: 192.168.0.254
//	labels:
//	  - name: private
//	    cidrs: [10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/255.255.0.0]
//
// Prefixes accept anything prefix.Parse does, dotted netmasks included.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/aglyzov/go-lpm/prefix"
	"github.com/aglyzov/go-lpm/table"
)

var log = logrus.WithField("component", "config")

type Route struct {
	Prefix  string `yaml:"prefix"`
	NextHop string `yaml:"nexthop"`
}

type Label struct {
	Name  string   `yaml:"name"`
	CIDRs []string `yaml:"cidrs"`
}

type Config struct {
	Routes []Route `yaml:"routes"`
	Labels []Label `yaml:"labels"`
}

// Load reads and validates a route file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading route file")
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "route file %s", path)
	}
	log.WithField("path", path).Debugf("loaded %d routes, %d labels", len(cfg.Routes), len(cfg.Labels))

	return cfg, nil
}

// Parse decodes and validates route file content.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every prefix parses and every entry has a value.
func (c *Config) Validate() error {
	for i, r := range c.Routes {
		if _, err := prefix.Parse(r.Prefix); err != nil {
			return errors.Wrapf(err, "route #%d", i)
		}
		if r.NextHop == "" {
			return errors.Errorf("route #%d (%s): missing nexthop", i, r.Prefix)
		}
	}
	for i, l := range c.Labels {
		if l.Name == "" {
			return errors.Errorf("label #%d: missing name", i)
		}
		for _, cidr := range l.CIDRs {
			if _, err := prefix.Parse(cidr); err != nil {
				return errors.Wrapf(err, "label %s", l.Name)
			}
		}
	}
	return nil
}

// RouteTable builds a table mapping each route prefix to its next hop.
// Later duplicates win.
func (c *Config) RouteTable(opts ...table.Option) (*table.Table[string], error) {
	tbl, err := table.New[string](opts...)
	if err != nil {
		return nil, err
	}

	for i, r := range c.Routes {
		if err := insert(tbl, r.Prefix, r.NextHop); err != nil {
			return nil, errors.Wrapf(err, "route #%d", i)
		}
	}
	return tbl, nil
}

// LabelTable builds a table mapping every label CIDR to the label name.
func (c *Config) LabelTable(opts ...table.Option) (*table.Table[string], error) {
	tbl, err := table.New[string](opts...)
	if err != nil {
		return nil, err
	}

	for _, l := range c.Labels {
		for _, cidr := range l.CIDRs {
			if err := insert(tbl, cidr, l.Name); err != nil {
				return nil, errors.Wrapf(err, "label %s", l.Name)
			}
		}
	}
	return tbl, nil
}

func insert(tbl *table.Table[string], text, val string) error {
	p, err := prefix.Parse(text)
	if err != nil {
		return err
	}
	if prev, ok := tbl.Get(p.Netip()); ok && prev != val {
		log.WithField("prefix", p).Warnf("%q replaces %q", val, prev)
	}
	return tbl.Insert(p.Netip(), val)
}
