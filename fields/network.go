package fields

// IPProtocol restricts which address families an IPAddress column accepts.
type IPProtocol string

// Accepted protocol restrictions.
const (
	ProtocolBoth IPProtocol = "both"
	ProtocolIPv4 IPProtocol = "ipv4"
	ProtocolIPv6 IPProtocol = "ipv6"
)

// IPUnpack selects the family an address is converted to when read back.
type IPUnpack string

// Accepted unpack modes. UnpackSame leaves stored values as they are.
const (
	UnpackSame IPUnpack = "same"
	UnpackIPv4 IPUnpack = "ipv4"
	UnpackIPv6 IPUnpack = "ipv6"
)

// IPAddress is an INET column holding a bare address or a CIDR prefix.
type IPAddress struct {
	common
	protocol IPProtocol
	unpack   IPUnpack
}

// NewIPAddress declares an INET column. Empty protocol and unpack select
// ProtocolBoth and UnpackSame. A column restricted to one family cannot also
// declare a conversion: unpacking is only meaningful when both families can
// be stored.
func NewIPAddress(column string, protocol IPProtocol, unpack IPUnpack, opts Options) (*IPAddress, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if protocol == "" {
		protocol = ProtocolBoth
	}
	if unpack == "" {
		unpack = UnpackSame
	}
	switch protocol {
	case ProtocolBoth, ProtocolIPv4, ProtocolIPv6:
	default:
		return nil, &DeclarationError{Field: column, Param: "protocol", Reason: `must be "both", "ipv4" or "ipv6"`}
	}
	switch unpack {
	case UnpackSame, UnpackIPv4, UnpackIPv6:
	default:
		return nil, &DeclarationError{Field: column, Param: "unpack", Reason: `must be "same", "ipv4" or "ipv6"`}
	}
	if protocol != ProtocolBoth && unpack != UnpackSame {
		return nil, &DeclarationError{Field: column, Param: "unpack", Reason: "conversion requires protocol \"both\""}
	}
	f := &IPAddress{common: newCommon(column, opts), protocol: protocol, unpack: unpack}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Protocol returns the declared family restriction.
func (f *IPAddress) Protocol() IPProtocol { return f.protocol }

// Unpack returns the declared read-side conversion.
func (f *IPAddress) Unpack() IPUnpack { return f.unpack }

func (*IPAddress) Kind() Kind  { return KindIPAddress }
func (*IPAddress) ddl() string { return "INET" }

// MacDialect selects the textual rendering of a MACADDR value on read.
type MacDialect string

// Accepted MAC renderings.
const (
	MacBare         MacDialect = "bare"          // AABBCCDDEEFF
	MacCisco        MacDialect = "cisco"         // aabb.ccdd.eeff
	MacEUI48        MacDialect = "eui48"         // AA-BB-CC-DD-EE-FF
	MacPgSQL        MacDialect = "pgsql"         // aabbcc:ddeeff
	MacUnix         MacDialect = "unix"          // a:b:cc:dd:ee:ff, octets unpadded
	MacUnixExpanded MacDialect = "unix-expanded" // aa:bb:cc:dd:ee:ff
)

// MacAddr is a MACADDR column.
type MacAddr struct {
	common
	dialect MacDialect
}

// NewMacAddr declares a MACADDR column. An empty dialect selects MacUnix.
func NewMacAddr(column string, dialect MacDialect, opts Options) (*MacAddr, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if dialect == "" {
		dialect = MacUnix
	}
	switch dialect {
	case MacBare, MacCisco, MacEUI48, MacPgSQL, MacUnix, MacUnixExpanded:
	default:
		return nil, &DeclarationError{Field: column, Param: "dialect", Reason: "unknown MAC dialect"}
	}
	f := &MacAddr{common: newCommon(column, opts), dialect: dialect}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Dialect returns the declared read-side rendering.
func (f *MacAddr) Dialect() MacDialect { return f.dialect }

func (*MacAddr) Kind() Kind  { return KindMacAddr }
func (*MacAddr) ddl() string { return "MACADDR" }
