package thicket

// Kind tags the runtime kind of an entity. Kinds form a tree: every kind
// except KindObject has a parent, and registry queries by kind match the kind
// itself and every kind derived from it.
type Kind uint16

const (
	KindObject     Kind = iota // root of the kind tree
	KindSprite                 // drawable, collidable entity with a stage level
	KindParticle               // lightweight drawable without collision
	KindPlatformer             // sprite with gravity and collision resolution
)

type kindInfo struct {
	name   string
	parent Kind
}

// kinds is indexed by Kind. Hosts extend it with RegisterKind during setup;
// thicket is single-threaded, so no locking.
var kinds = []kindInfo{
	KindObject:     {name: "object", parent: KindObject},
	KindSprite:     {name: "sprite", parent: KindObject},
	KindParticle:   {name: "particle", parent: KindObject},
	KindPlatformer: {name: "platformer", parent: KindSprite},
}

// RegisterKind declares a new kind derived from parent and returns its tag.
// Register host kinds once at startup, before entities of that kind exist.
//
//	var KindPlayer = thicket.RegisterKind("player", thicket.KindPlatformer)
func RegisterKind(name string, parent Kind) Kind {
	if int(parent) >= len(kinds) {
		parent = KindObject
	}
	kinds = append(kinds, kindInfo{name: name, parent: parent})
	return Kind(len(kinds) - 1)
}

// Is reports whether k is other or derived from other.
func (k Kind) Is(other Kind) bool {
	for int(k) < len(kinds) {
		if k == other {
			return true
		}
		if k == KindObject {
			return false
		}
		k = kinds[k].parent
	}
	return false
}

// Parent returns the kind k derives from. KindObject is its own parent.
func (k Kind) Parent() Kind {
	if int(k) >= len(kinds) {
		return KindObject
	}
	return kinds[k].parent
}

// String returns the registered kind name.
func (k Kind) String() string {
	if int(k) >= len(kinds) {
		return "unknown"
	}
	return kinds[k].name
}
