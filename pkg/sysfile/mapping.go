package sysfile

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/sexpr"
)

const (
	mappingHead = "mapping"
	preSection  = "pre"
	postSection = "post"
	mapEntry    = "map"
	finalTag    = "final"
)

func section(usePre bool) string {
	if usePre {
		return preSection
	}
	return postSection
}

// ReadMappingFile applies the (map unit fpga) entries of one section of the
// mapping file at path: the pre section when usePre is set, else post. A
// unit name resolves to a group first, then to an ungrouped component.
// Listed units are unmapped before any entry is applied so that swaps
// succeed; units the file does not list keep their placement. Any failure
// leaves m unchanged.
func ReadMappingFile(path string, m *model.Model, usePre bool) error {
	doc, err := readMapping(path)
	if err != nil {
		return err
	}
	if doc == nil {
		return errors.Wrapf(os.ErrNotExist, "read mapping file %s", path)
	}
	name := section(usePre)
	sec, ok := doc.Find(name)
	if !ok {
		return model.NewArgumentError("ReadMappingFile", "%s has no %s section", path, name)
	}

	type entry struct {
		unit model.Unit
		fpga string
		line int
	}
	var entries []entry
	for _, e := range sec.FindAll(mapEntry) {
		unitID, ok1 := e.Atom(1)
		fpga, ok2 := e.Atom(2)
		if !ok1 || !ok2 || e.Len() != 3 {
			return model.NewArgumentError("ReadMappingFile", "%s:%d: want (map unit fpga), got %s", path, e.Line, e)
		}
		u, err := resolveUnit(m, unitID)
		if err != nil {
			return errors.Wrapf(err, "%s:%d", path, e.Line)
		}
		entries = append(entries, entry{unit: u, fpga: fpga, line: e.Line})
	}

	work := m.Clone()
	for _, e := range entries {
		if err := work.UnmapUnit(e.unit); err != nil {
			return errors.Wrapf(err, "%s:%d", path, e.line)
		}
	}
	for _, e := range entries {
		if err := work.MapUnit(e.unit, e.fpga); err != nil {
			return errors.Wrapf(err, "%s:%d", path, e.line)
		}
	}
	m.Restore(work)
	return nil
}

func resolveUnit(m *model.Model, id string) (model.Unit, error) {
	if _, ok := m.Group(id); ok {
		return model.Unit{Kind: model.GroupUnit, ID: id}, nil
	}
	if c, ok := m.Component(id); ok {
		if c.GroupID != "" {
			return model.Unit{}, model.NewArgumentError("ReadMappingFile",
				"component %s is placed through group %s", id, c.GroupID)
		}
		return model.Unit{Kind: model.ComponentUnit, ID: id}, nil
	}
	return model.Unit{}, &model.Error{Kind: model.ReferenceError, Op: "ReadMappingFile", Entity: "unit", ID: id, Msg: "does not exist"}
}

// WriteMappingFile writes the current assignments of m into one section of
// the mapping file at path. The other section of an existing file is kept.
// With finalize the mapping must be complete and the section is tagged
// (final).
func WriteMappingFile(path string, m *model.Model, usePre, finalize bool) error {
	if finalize && !m.MappingComplete() {
		return &model.Error{Kind: model.IntegrityError, Op: "WriteMappingFile", Msg: "mapping is incomplete; run map first"}
	}
	doc, err := readMapping(path)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = sexpr.L(sexpr.Sym(mappingHead), sexpr.Syms(preSection), sexpr.Syms(postSection))
	}
	doc.Replace(section(usePre), MappingSection(m, usePre, finalize))

	if err := os.WriteFile(path, []byte(sexpr.Format(doc)), 0o644); err != nil {
		return fmt.Errorf("sysfile: %w", err)
	}
	return nil
}

// MappingSection renders the mapped units of m as a pre or post section.
func MappingSection(m *model.Model, usePre, finalize bool) *sexpr.List {
	sec := sexpr.Syms(section(usePre))
	if finalize {
		sec.Items = append(sec.Items, sexpr.Syms(finalTag))
	}
	for _, u := range m.Units() {
		if t := m.UnitTarget(u); t != "" {
			sec.Items = append(sec.Items, sexpr.L(sexpr.Sym(mapEntry), sexpr.Sym(u.ID), sexpr.Sym(t)))
		}
	}
	return sec
}

// readMapping returns the (mapping ...) list of an existing file, or nil
// when the file does not exist.
func readMapping(path string) (*sexpr.List, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sysfile: %w", err)
	}
	defer f.Close()

	exprs, err := sexpr.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read mapping file %s", path)
	}
	for _, e := range exprs {
		if l, ok := e.(*sexpr.List); ok && l.Head() == mappingHead {
			return l, nil
		}
	}
	return nil, model.NewArgumentError("ReadMappingFile", "%s has no (mapping ...) form", path)
}

// IsFinal reports whether the chosen section of the mapping file at path is
// tagged (final).
func IsFinal(path string, usePre bool) (bool, error) {
	doc, err := readMapping(path)
	if err != nil || doc == nil {
		return false, err
	}
	sec, ok := doc.Find(section(usePre))
	return ok && sec.Has(finalTag), nil
}
