package space

import "fmt"

// TagsID is the reserved id of the tag container of a composite.
const TagsID = "tags"

var (
	_ Positional   = &Tag{}
	_ MediumMember = &TagEquipped{}
	_ Medium       = &TagMedium{}
)

// Tag is a positional marker carrying a payload, e.g. a fiducial.
type Tag struct {
	BaseEntity
	pose           Pose
	payload        string
	initialPayload string
}

func NewTag() *Tag {
	return &Tag{BaseEntity: NewBaseEntity("tag")}
}

func (t *Tag) Init(cfg EntityConfig) error {
	if err := t.BaseEntity.Init(cfg); err != nil {
		return err
	}
	t.pose = NewPose(Vector3{}, IdentityQuaternion)
	t.SetCapability(PositionalCapability(t))
	return nil
}

func (t *Tag) Position() Vector3 {
	return t.pose.Position
}

func (t *Tag) Orientation() Quaternion {
	return t.pose.Orientation
}

func (t *Tag) MoveTo(position Vector3, orientation Quaternion) {
	t.pose = NewPose(position, orientation)
}

func (t *Tag) Payload() string {
	return t.payload
}

func (t *Tag) SetPayload(payload string) {
	t.payload = payload
}

func (t *Tag) Reset() {
	t.payload = t.initialPayload
}

type tagInstance struct {
	tag    *Tag
	anchor *Anchor
	offset Pose
}

// TagEquipped holds tags fixed to anchors of its parent's body. It stays
// disabled until it joins a tag medium.
type TagEquipped struct {
	BaseEntity
	instances []tagInstance
	medium    *TagMedium
}

func NewTagEquipped(Scope) *TagEquipped {
	return &TagEquipped{BaseEntity: NewBaseEntity("tags")}
}

// Init expects the container to be attached to an entity with an embodied
// capability already.
func (te *TagEquipped) Init(cfg EntityConfig) error {
	if err := te.BaseEntity.Init(cfg); err != nil {
		return err
	}
	parent := te.Parent()
	if parent == nil {
		return ConfigurationError{Subject: "tags " + cfg.ID, Reason: "no parent with a body"}
	}
	body, ok := parent.Capability().Embodied()
	if !ok {
		return ConfigurationError{Subject: "tags " + cfg.ID, Reason: fmt.Sprintf("parent %q has no body", parent.ID())}
	}
	for _, tc := range cfg.Tags {
		anchor, err := body.Anchor(tc.Anchor)
		if err != nil {
			return err
		}
		tag := NewTag()
		if err := tag.Init(EntityConfig{Type: "tag", ID: tc.ID}); err != nil {
			return err
		}
		tag.initialPayload = tc.Payload
		tag.payload = tc.Payload
		if err := Attach(te, tag); err != nil {
			return err
		}
		te.instances = append(te.instances, tagInstance{
			tag:    tag,
			anchor: anchor,
			offset: NewPose(tc.Position, OrientationFromDegrees(tc.Orientation)),
		})
	}
	te.Disable()
	return nil
}

func (te *TagEquipped) Tags() []*Tag {
	tags := make([]*Tag, len(te.instances))
	for i, in := range te.instances {
		tags[i] = in.tag
	}
	return tags
}

func (te *TagEquipped) Tag(index int) (*Tag, error) {
	if index < 0 || index >= len(te.instances) {
		return nil, fmt.Errorf("tag index %d out of range [0, %d)", index, len(te.instances))
	}
	return te.instances[index].tag, nil
}

func (te *TagEquipped) SetTagPayloads(payloads ...string) error {
	if len(payloads) == 1 {
		for _, in := range te.instances {
			in.tag.SetPayload(payloads[0])
		}
		return nil
	}
	if len(payloads) != len(te.instances) {
		return fmt.Errorf("%q has %d tags but %d payloads were given", FullID(te), len(te.instances), len(payloads))
	}
	for i, in := range te.instances {
		in.tag.SetPayload(payloads[i])
	}
	return nil
}

func (te *TagEquipped) Enable() {
	te.BaseEntity.Enable()
	for _, in := range te.instances {
		in.tag.Enable()
	}
}

func (te *TagEquipped) Disable() {
	te.BaseEntity.Disable()
	for _, in := range te.instances {
		in.tag.Disable()
	}
}

// UpdateComponents moves every enabled tag to anchor pose composed with the
// tag offset.
func (te *TagEquipped) UpdateComponents() {
	for _, in := range te.instances {
		if !in.tag.Enabled() {
			continue
		}
		anchor, err := in.anchor.Pose()
		if err != nil {
			continue
		}
		p := anchor.Compose(in.offset)
		in.tag.MoveTo(p.Position, p.Orientation)
	}
}

func (te *TagEquipped) JoinMedia(media []Medium) {
	for _, m := range media {
		if tm, ok := m.(*TagMedium); ok {
			tm.add(te)
			te.medium = tm
			te.Enable()
			te.UpdateComponents()
			return
		}
	}
}

func (te *TagEquipped) LeaveMedia() {
	if te.medium == nil {
		return
	}
	te.medium.remove(te)
	te.medium = nil
	te.Disable()
}

// TagReading is the state of one tag as seen by the medium after a step.
type TagReading struct {
	ID      string
	Payload string
	Pose    Pose
}

// TagMedium refreshes every tag of its members after physics and exposes the
// resulting readings to the sense phase.
type TagMedium struct {
	id       string
	members  []*TagEquipped
	readings []TagReading
}

func NewTagMedium(id string) *TagMedium {
	return &TagMedium{id: id}
}

func (m *TagMedium) ID() string {
	return m.id
}

func (m *TagMedium) add(te *TagEquipped) {
	m.members = append(m.members, te)
}

func (m *TagMedium) remove(te *TagEquipped) {
	for i, member := range m.members {
		if member == te {
			m.members = append(m.members[:i], m.members[i+1:]...)
			return
		}
	}
}

func (m *TagMedium) Update() {
	m.readings = m.readings[:0]
	for _, te := range m.members {
		te.UpdateComponents()
		for _, in := range te.instances {
			if !in.tag.Enabled() {
				continue
			}
			m.readings = append(m.readings, TagReading{
				ID:      FullID(in.tag),
				Payload: in.tag.Payload(),
				Pose:    in.tag.pose,
			})
		}
	}
}

func (m *TagMedium) Readings() []TagReading {
	return m.readings
}

func (m *TagMedium) Reset() {
	m.readings = m.readings[:0]
}
