package relation

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/relormdb/relorm/idl"
	"github.com/relormdb/relorm/ormerr"
)

// pathKey returns a canonical map key for a Path, based solely on its
// numeric sequence (names never participate in identity, §3).
func pathKey(p Path) string {
	if p.Empty() {
		return ""
	}
	var b strings.Builder
	for i, n := range p.numbers {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(n), 10))
	}
	return b.String()
}

// object is the registry's internal record for either a message or a
// primitive field, letting GetObject return a single type.
type object struct {
	message *MessageInfo
	field   *PrimitiveFieldInfo
}

// Registry is the schema registry (relation manager), §4.3: the single
// source of truth for all schema objects, populated by RegisterRoot,
// queried during query construction, reset by Clear.
//
// The zero value is not usable; construct with NewRegistry.
type Registry struct {
	pool idl.DescriptorPool

	mu sync.RWMutex

	objects     map[string]object    // pathKey -> object
	parentTable map[string]*TableInfo // pathKey -> owning root's TableInfo
	names       map[string]map[string]uint32 // parent pathKey -> name -> number
	tableByNum  map[uint32]string // table number -> snake_case, for duplicate detection
	tableByName map[string]uint32 // snake_case -> table number

	subtreeCache   map[string]map[string]*MessageInfo
	subtreeGroup   singleflight.Group
	ancestorsCache map[string]map[string]any
}

// NewRegistry returns an empty Registry resolving IDL types through pool.
func NewRegistry(pool idl.DescriptorPool) *Registry {
	return &Registry{pool: pool, objects: map[string]object{}, parentTable: map[string]*TableInfo{},
		names: map[string]map[string]uint32{}, tableByNum: map[uint32]string{}, tableByName: map[string]uint32{}}
}

// Clear drops all registry state. Must not overlap with concurrent
// readers, §4.3/§5.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects = map[string]object{}
	r.parentTable = map[string]*TableInfo{}
	r.names = map[string]map[string]uint32{}
	r.tableByNum = map[uint32]string{}
	r.tableByName = map[string]uint32{}
	r.subtreeCache = nil
	r.ancestorsCache = nil
	r.subtreeGroup = singleflight.Group{}
}

// RegisterRoot ingests one root message per §4.3's walk algorithm. On
// any failure the registry is left exactly as it was before the call.
func (r *Registry) RegisterRoot(config TableConfig) error {
	if err := normalizeNames(&config); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.tableByNum[config.TableNumber]; ok {
		return ormerr.New(ormerr.DuplicateRegistration, config.SnakeCase,
			"table number %d already registered to %q", config.TableNumber, existing)
	}
	if _, ok := r.tableByName[config.SnakeCase]; ok {
		return ormerr.New(ormerr.DuplicateRegistration, config.SnakeCase, "snake_case name already registered")
	}

	desc, ok := r.pool.FindMessageByName(config.Scheme)
	if !ok {
		return ormerr.New(ormerr.UnknownSchema, config.Scheme, "no IDL message registered under this name")
	}

	rootPath := newPathWith([]uint32{config.TableNumber}, []string{config.SnakeCase})
	cfgCopy := config
	root := &MessageInfo{path: rootPath, descriptor: desc, kind: RootMessage, table: &cfgCopy}

	w := &walker{reg: r}
	related := w.walk(rootPath, desc, root, root, true)

	table := &TableInfo{
		Path:            rootPath,
		RelatedMessages: related.messages,
		RelatedFields:   related.fields,
		PrimaryKeys:     related.primaryKeys,
	}
	root.primaryKeys = related.primaryKeys

	// Commit: only now do we mutate the registry's public indexes, so a
	// failure above (none currently possible post-lookup, but kept for
	// forward compatibility) never leaves partial state.
	r.tableByNum[config.TableNumber] = config.SnakeCase
	r.tableByName[config.SnakeCase] = config.TableNumber
	r.objects[pathKey(rootPath)] = object{message: root}
	r.names[""] = ensureMap(r.names[""])
	r.names[""][config.SnakeCase] = config.TableNumber
	for _, obj := range w.newObjects {
		r.objects[pathKey(obj.path())] = obj
	}
	for k, v := range w.newNames {
		r.names[k] = ensureMap(r.names[k])
		for name, num := range v {
			r.names[k][name] = num
		}
	}
	for _, p := range w.allPaths {
		r.parentTable[pathKey(p)] = table
	}
	r.parentTable[pathKey(rootPath)] = table

	r.subtreeCache = nil
	r.ancestorsCache = nil
	r.subtreeGroup = singleflight.Group{}

	return nil
}

func ensureMap(m map[string]uint32) map[string]uint32 {
	if m == nil {
		return map[string]uint32{}
	}
	return m
}

func (o object) path() Path {
	if o.message != nil {
		return o.message.path
	}
	return o.field.path
}

// relatedAccumulator collects the flattened sets a TableInfo needs
// while the walk descends only through singular (non-repeated,
// non-map) message fields.
type relatedAccumulator struct {
	messages    []Path
	fields      []Path
	primaryKeys []Path
}

// walker carries the staged (not-yet-committed) objects and name
// registrations produced by one RegisterRoot call, so a fully-walked
// descriptor can be committed to the Registry atomically.
type walker struct {
	reg        *Registry
	newObjects []object
	newNames   map[string]map[string]uint32
	allPaths   []Path
}

// walk processes desc's fields under parentPath, recording children on
// parentInfo and, when related is true, folding singular descendants
// into the returned relatedAccumulator for rootInfo's TableInfo.
func (w *walker) walk(parentPath Path, desc idl.MessageDescriptor, parentInfo, rootInfo *MessageInfo, related bool) relatedAccumulator {
	var acc relatedAccumulator
	if w.newNames == nil {
		w.newNames = map[string]map[string]uint32{}
	}

	for _, f := range desc.Fields() {
		childPath := newPathWith(append(parentPath.Numbers(), uint32(f.Number())), append(namesOf(parentPath), f.Name()))
		w.allPaths = append(w.allPaths, childPath)

		parentKey := pathKey(parentPath)
		if w.newNames[parentKey] == nil {
			w.newNames[parentKey] = map[string]uint32{}
		}
		w.newNames[parentKey][f.Name()] = uint32(f.Number())

		singular := !f.IsRepeated() && !f.IsMap()
		childRelated := related && singular

		if f.Kind() == protoreflect.MessageKind || f.Kind() == protoreflect.GroupKind {
			childInfo := &MessageInfo{path: childPath, descriptor: f.MessageType(), kind: FieldMessage}
			parentInfo.subMessages = append(parentInfo.subMessages, childPath)
			w.newObjects = append(w.newObjects, object{message: childInfo})

			sub := w.walk(childPath, f.MessageType(), childInfo, rootInfo, childRelated)
			if childRelated {
				acc.messages = append(acc.messages, childPath)
				acc.messages = append(acc.messages, sub.messages...)
				acc.fields = append(acc.fields, sub.fields...)
			}
			acc.primaryKeys = append(acc.primaryKeys, sub.primaryKeys...)
			continue
		}

		fi := &PrimitiveFieldInfo{path: childPath, descriptor: f, typeInfo: decodeTypeInfo(f), primaryKey: f.PrimaryKey()}
		parentInfo.primitiveFields = append(parentInfo.primitiveFields, childPath)
		w.newObjects = append(w.newObjects, object{field: fi})
		if childRelated {
			acc.fields = append(acc.fields, childPath)
		}
		if f.PrimaryKey() {
			acc.primaryKeys = append(acc.primaryKeys, childPath)
		}
	}
	return acc
}

func namesOf(p Path) []string {
	if len(p.names) == len(p.numbers) {
		return append([]string(nil), p.names...)
	}
	// Names were not fully resolved for an ancestor (shouldn't happen
	// for paths the walker itself builds); fall back to empty strings
	// so the slice lengths still agree.
	out := make([]string, len(p.numbers))
	copy(out, p.names)
	return out
}

// decodeTypeInfo maps an IDL field descriptor's Kind/Default to §4.2's
// tagged TypeInfo union.
func decodeTypeInfo(f idl.FieldDescriptor) TypeInfo {
	switch f.Kind() {
	case protoreflect.BoolKind:
		return TypeInfo{Kind: KindBool, BoolDefault: f.Default().Bool()}
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return TypeInfo{Kind: KindInt32, Int32Default: int32(f.Default().Int()), Increment: f.AutoIncrement()}
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return TypeInfo{Kind: KindUInt32, UInt32Default: uint32(f.Default().Uint()), Increment: f.AutoIncrement()}
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return TypeInfo{Kind: KindInt64, Int64Default: f.Default().Int(), Increment: f.AutoIncrement()}
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return TypeInfo{Kind: KindUInt64, UInt64Default: f.Default().Uint(), Increment: f.AutoIncrement()}
	case protoreflect.FloatKind:
		return TypeInfo{Kind: KindFloat, FloatDefault: float32(f.Default().Float())}
	case protoreflect.DoubleKind:
		return TypeInfo{Kind: KindDouble, DoubleDefault: f.Default().Float()}
	case protoreflect.StringKind:
		return TypeInfo{Kind: KindString, StringDefault: f.Default().String()}
	case protoreflect.BytesKind:
		return TypeInfo{Kind: KindBytes, BytesDefault: append([]byte(nil), f.Default().Bytes()...)}
	case protoreflect.EnumKind:
		full := ""
		if ed := f.EnumDescriptor(); ed != nil {
			full = ed.FullName()
		}
		return TypeInfo{Kind: KindEnum, EnumDefaultIndex: int32(f.Default().Enum()), EnumFullName: full}
	default:
		return TypeInfo{Kind: KindMonostate}
	}
}

// GetObject resolves path to either a *MessageInfo or a
// *PrimitiveFieldInfo.
func (r *Registry) GetObject(path Path) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obj, ok := r.objects[pathKey(path)]
	if !ok {
		return nil, ormerr.New(ormerr.UnknownPath, path.String(), "path not registered")
	}
	if obj.message != nil {
		return obj.message, nil
	}
	return obj.field, nil
}

// GetObjectType returns the bitset of object kinds registered at path.
func (r *Registry) GetObjectType(path Path) (ObjectKind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obj, ok := r.objects[pathKey(path)]
	if !ok {
		return 0, ormerr.New(ormerr.UnknownPath, path.String(), "path not registered")
	}
	if obj.field != nil {
		return PrimitiveField, nil
	}
	return obj.message.kind, nil
}

// GetMessage resolves path to a *MessageInfo (root or sub-message).
func (r *Registry) GetMessage(path Path) (*MessageInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obj, ok := r.objects[pathKey(path)]
	if !ok || obj.message == nil {
		return nil, ormerr.New(ormerr.UnknownPath, path.String(), "path is not a registered message")
	}
	return obj.message, nil
}

// GetRootMessage resolves path to a root *MessageInfo.
func (r *Registry) GetRootMessage(path Path) (*MessageInfo, error) {
	m, err := r.GetMessage(path)
	if err != nil {
		return nil, err
	}
	if !m.IsRoot() {
		return nil, ormerr.New(ormerr.UnknownPath, path.String(), "path is not a root message")
	}
	return m, nil
}

// GetPrimitiveField resolves path to a *PrimitiveFieldInfo.
func (r *Registry) GetPrimitiveField(path Path) (*PrimitiveFieldInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obj, ok := r.objects[pathKey(path)]
	if !ok || obj.field == nil {
		return nil, ormerr.New(ormerr.UnknownPath, path.String(), "path is not a registered primitive field")
	}
	return obj.field, nil
}

// GetField is an alias for GetPrimitiveField kept for parity with the
// original API surface (§4.3).
func (r *Registry) GetField(path Path) (*PrimitiveFieldInfo, error) { return r.GetPrimitiveField(path) }

// GetParentTable returns the TableInfo of the root message owning path.
func (r *Registry) GetParentTable(path Path) (*TableInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.parentTable[pathKey(path)]
	if !ok {
		return nil, ormerr.New(ormerr.UnknownPath, path.String(), "path has no registered parent table")
	}
	return t, nil
}

// ResolveName looks up a symbolic segment registered under prefix,
// returning its numeric element. Used by Path construction from string
// fragments, §4.1.
func (r *Registry) ResolveName(prefix Path, name string) (uint32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ns, ok := r.names[pathKey(prefix)]
	if !ok {
		return 0, ormerr.New(ormerr.UnknownPathSegment, name, "no names registered under prefix %q", prefix.String())
	}
	num, ok := ns[name]
	if !ok {
		return 0, ormerr.New(ormerr.UnknownPathSegment, name, "unknown segment under prefix %q", prefix.String())
	}
	return num, nil
}

// ResolveNameToTable looks up a root table's snake_case name, returning
// its table number. Used for the empty-path namespace, §4.3.
func (r *Registry) ResolveNameToTable(name string) (uint32, error) {
	return r.ResolveName(NewPath(), name)
}

// NewPathFromString splits name on '/' and resolves each segment
// against the registry, failing with UnknownPathSegment if a name is
// not registered at the accumulated prefix, §4.1.
func (r *Registry) NewPathFromString(name string) (Path, error) {
	if name == "" {
		return NewPath(), nil
	}
	segments := strings.Split(name, "/")
	path := NewPath()
	names := []string{}
	for _, seg := range segments {
		num, err := r.ResolveName(path, seg)
		if err != nil {
			return Path{}, err
		}
		path = path.JoinNumber(num)
		names = append(names, seg)
		path.names = names[:len(names):len(names)]
	}
	return path, nil
}

// GetMessagesFromSubtree returns every registered message whose path
// equals or descends from root, keyed by pathKey-independent Path
// equality (the returned map is keyed by the string form of the path
// for stable iteration). The result is cached and invalidated on
// Clear/RegisterRoot; concurrent cache-miss computations for the same
// root collapse via singleflight, §4.3/§5.
func (r *Registry) GetMessagesFromSubtree(root Path) (map[string]*MessageInfo, error) {
	key := pathKey(root)

	r.mu.RLock()
	if r.subtreeCache != nil {
		if cached, ok := r.subtreeCache[key]; ok {
			r.mu.RUnlock()
			return cached, nil
		}
	}
	r.mu.RUnlock()

	v, err, _ := r.subtreeGroup.Do(key, func() (any, error) {
		r.mu.RLock()
		if r.subtreeCache != nil {
			if cached, ok := r.subtreeCache[key]; ok {
				r.mu.RUnlock()
				return cached, nil
			}
		}
		if _, ok := r.objects[key]; !ok && !root.Empty() {
			r.mu.RUnlock()
			return nil, ormerr.New(ormerr.UnknownPath, root.String(), "subtree root not registered")
		}
		result := map[string]*MessageInfo{}
		for _, obj := range r.objects {
			if obj.message == nil {
				continue
			}
			if obj.message.path.Equal(root) || root.IsAncestorOf(obj.message.path) {
				result[obj.message.path.String()] = obj.message
			}
		}
		r.mu.RUnlock()

		r.mu.Lock()
		if r.subtreeCache == nil {
			r.subtreeCache = map[string]map[string]*MessageInfo{}
		}
		r.subtreeCache[key] = result
		r.mu.Unlock()
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]*MessageInfo), nil
}

// GetObjectWithAncestors walks path's parent chain, returning every
// registered object from path up to (and including) its root. Cached;
// invalidated on any registration change.
func (r *Registry) GetObjectWithAncestors(path Path) (map[string]any, error) {
	key := pathKey(path)

	r.mu.RLock()
	if r.ancestorsCache != nil {
		if cached, ok := r.ancestorsCache[key]; ok {
			r.mu.RUnlock()
			return cached, nil
		}
	}
	r.mu.RUnlock()

	result := map[string]any{}
	for p := path; ; p = p.Parent() {
		obj, err := r.GetObject(p)
		if err == nil {
			result[p.String()] = obj
		} else if p.Empty() {
			break
		}
		if p.Empty() {
			break
		}
	}

	r.mu.Lock()
	if r.ancestorsCache == nil {
		r.ancestorsCache = map[string]map[string]any{}
	}
	r.ancestorsCache[key] = result
	r.mu.Unlock()
	return result, nil
}
