// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package okjson

// Root returns a view of the top-level value of the document. It reports
// ErrNotReady unless the most recent call to Parse succeeded.
func (p *Parser) Root() (View, error) {
	if p == nil || p.state != complete || p.ntok == 0 {
		return View{}, ErrNotReady
	}
	return View{p: p, idx: 0}, nil
}

// Get returns the value of the member of the top-level object with the given
// key, which must have type typ.
//
// Get reports ErrNotReady if p does not hold a parsed document, ErrNotFound
// if the document is not an object or has no member with that key, and
// ErrTypeMismatch if the member exists but its value has a different type.
// If typ is not a valid type, Get reports InvalidTypeEnum.
//
// Keys are compared byte for byte against the undecoded key text. Only members
// of the top-level object are considered.
func (p *Parser) Get(key string, typ Type) (View, error) {
	if !typ.Valid() {
		return View{}, InvalidTypeEnum
	}
	v, err := p.GetToken(key)
	if err != nil {
		return View{}, err
	} else if v.Type() != typ {
		return View{}, ErrTypeMismatch
	}
	return v, nil
}

// GetToken returns the value of the member of the top-level object with the
// given key, whatever its type. See Get.
func (p *Parser) GetToken(key string) (View, error) {
	root, err := p.Root()
	if err != nil {
		return View{}, err
	}
	obj, err := root.AsObject()
	if err != nil {
		return View{}, ErrNotFound
	}
	return obj.Find(key)
}

// GetString returns the string value of the given top-level key. See Get.
func (p *Parser) GetString(key string) (StringView, error) {
	v, err := p.Get(key, String)
	if err != nil {
		return StringView{}, err
	}
	return StringView{v}, nil
}

// GetNumber returns the number value of the given top-level key. See Get.
func (p *Parser) GetNumber(key string) (NumberView, error) {
	v, err := p.Get(key, Number)
	if err != nil {
		return NumberView{}, err
	}
	return NumberView{v}, nil
}

// GetBoolean returns the Boolean value of the given top-level key. See Get.
func (p *Parser) GetBoolean(key string) (BoolView, error) {
	v, err := p.Get(key, Boolean)
	if err != nil {
		return BoolView{}, err
	}
	return BoolView{v}, nil
}

// GetArray returns the array value of the given top-level key. See Get.
func (p *Parser) GetArray(key string) (ArrayView, error) {
	v, err := p.Get(key, Array)
	if err != nil {
		return ArrayView{}, err
	}
	return ArrayView{v}, nil
}

// GetObject returns the object value of the given top-level key. See Get.
func (p *Parser) GetObject(key string) (ObjectView, error) {
	v, err := p.Get(key, Object)
	if err != nil {
		return ObjectView{}, err
	}
	return ObjectView{v}, nil
}
