package statewire

func (s *Store) GetString(key string) string {
	v, _ := s.Get(key).(string)
	return v
}

func (s *Store) SetString(key string, value string) {
	s.Set(key, value)
}

func (s *Store) WatchString(key string, cb func(newV, oldV string)) DisposeFunc {
	return Watch(s, key, func(newV, oldV any) {
		n, _ := newV.(string)
		o, _ := oldV.(string)
		cb(n, o)
	})
}

func (s *Store) GetInt(key string) int {
	v, _ := s.Get(key).(int)
	return v
}

func (s *Store) SetInt(key string, value int) {
	s.Set(key, value)
}

func (s *Store) WatchInt(key string, cb func(newV, oldV int)) DisposeFunc {
	return Watch(s, key, func(newV, oldV any) {
		n, _ := newV.(int)
		o, _ := oldV.(int)
		cb(n, o)
	})
}

func (s *Store) GetInt64(key string) int64 {
	v, _ := s.Get(key).(int64)
	return v
}

func (s *Store) SetInt64(key string, value int64) {
	s.Set(key, value)
}

func (s *Store) WatchInt64(key string, cb func(newV, oldV int64)) DisposeFunc {
	return Watch(s, key, func(newV, oldV any) {
		n, _ := newV.(int64)
		o, _ := oldV.(int64)
		cb(n, o)
	})
}

func (s *Store) GetFloat64(key string) float64 {
	v, _ := s.Get(key).(float64)
	return v
}

func (s *Store) SetFloat64(key string, value float64) {
	s.Set(key, value)
}

func (s *Store) WatchFloat64(key string, cb func(newV, oldV float64)) DisposeFunc {
	return Watch(s, key, func(newV, oldV any) {
		n, _ := newV.(float64)
		o, _ := oldV.(float64)
		cb(n, o)
	})
}

func (s *Store) GetBool(key string) bool {
	v, _ := s.Get(key).(bool)
	return v
}

func (s *Store) SetBool(key string, value bool) {
	s.Set(key, value)
}

func (s *Store) WatchBool(key string, cb func(newV, oldV bool)) DisposeFunc {
	return Watch(s, key, func(newV, oldV any) {
		n, _ := newV.(bool)
		o, _ := oldV.(bool)
		cb(n, o)
	})
}
